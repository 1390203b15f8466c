package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/AdviTravel/advitravel-backend/config"
	"github.com/AdviTravel/advitravel-backend/handlers"
	"github.com/AdviTravel/advitravel-backend/middleware"
	"github.com/AdviTravel/advitravel-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	RegisterHandler *handlers.RegisterHandler
	HealthHandler   *handlers.HealthHandler
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// The form endpoint accepts POST only; everything else gets the JSON
	// 405 body the landing page knows how to render. The body is never
	// read on this path.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, types.ErrorResponse{
			OK:    false,
			Error: "Method not allowed",
		})
	})

	// Health and Metrics Routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/register", deps.RegisterHandler.Register)
	}

	// Serve the built landing page when a static directory is configured;
	// unknown paths fall back to index.html for client-side routing.
	if dir := deps.Config.Server.StaticDir; dir != "" {
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, types.ErrorResponse{OK: false, Error: "Not found"})
				return
			}
			path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				c.File(path)
				return
			}
			c.File(filepath.Join(dir, "index.html"))
		})
	} else {
		r.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{OK: false, Error: "Not found"})
		})
	}

	return r
}
