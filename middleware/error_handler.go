package middleware

import (
	"net/http"

	apperrors "github.com/AdviTravel/advitravel-backend/errors"
	"github.com/AdviTravel/advitravel-backend/logger"
	"github.com/AdviTravel/advitravel-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// body the landing page expects: {ok:false, error, fields?, detail?}. No
// error may escape as a non-JSON response, so unknown error values get a
// generic 500 body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*apperrors.AppError); ok {
			status := appError.GetHTTPStatus()
			log.Errorw("Request failed",
				"error_type", string(appError.Type),
				"error_message", appError.Message,
				"status", status,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"client_ip", c.ClientIP(),
				"request_id", c.GetString(RequestIDKey))

			c.AbortWithStatusJSON(status, types.ErrorResponse{
				OK:     false,
				Error:  appError.Message,
				Fields: appError.Fields,
				Detail: appError.Payload,
			})
			return
		}

		log.Errorw("Unhandled error",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
			OK:    false,
			Error: "Internal server error",
		})
	}
}
