package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/AdviTravel/advitravel-backend/config"
	apperrors "github.com/AdviTravel/advitravel-backend/errors"
	"github.com/AdviTravel/advitravel-backend/internal/form"
	"github.com/AdviTravel/advitravel-backend/logger"
	"github.com/AdviTravel/advitravel-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// registerSubject is fixed; the recipient filters on it.
const registerSubject = "New investor form submission"

// RegisterMetrics counts submissions per pipeline stage.
type RegisterMetrics struct {
	received  prometheus.Counter
	spam      prometheus.Counter
	rejected  prometheus.Counter
	delivered prometheus.Counter
	failed    prometheus.Counter
}

// RegisterHandler handles investor form submissions from the landing page.
type RegisterHandler struct {
	emailConfig *config.EmailConfig
	formConfig  *config.FormConfig
	sender      EmailSender
	metrics     *RegisterMetrics
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(emailCfg *config.EmailConfig, formCfg *config.FormConfig, sender EmailSender) *RegisterHandler {
	return NewRegisterHandlerWithRegistry(emailCfg, formCfg, sender, prometheus.DefaultRegisterer)
}

func NewRegisterHandlerWithRegistry(emailCfg *config.EmailConfig, formCfg *config.FormConfig, sender EmailSender, reg prometheus.Registerer) *RegisterHandler {
	metrics := &RegisterMetrics{
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advitravel_submissions_received_total",
			Help: "Total number of submissions received",
		}),
		spam: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advitravel_submissions_spam_total",
			Help: "Total number of submissions dropped by the honeypot",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advitravel_submissions_rejected_total",
			Help: "Total number of submissions failing validation",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advitravel_submissions_delivered_total",
			Help: "Total number of submissions relayed to the provider",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advitravel_submissions_failed_total",
			Help: "Total number of submissions the provider did not accept",
		}),
	}
	reg.MustRegister(metrics.received, metrics.spam, metrics.rejected, metrics.delivered, metrics.failed)

	return &RegisterHandler{
		emailConfig: emailCfg,
		formConfig:  formCfg,
		sender:      sender,
		metrics:     metrics,
	}
}

// Register godoc
// @Summary      Submit investor interest
// @Description  Validates an investor form submission and relays it by email
// @Tags         register
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Accept       mpfd
// @Produce      json
// @Success      200  {object}  types.SubmitResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      405  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Failure      502  {object}  types.ErrorResponse
// @Router       /api/register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	log := logger.GetLogger()
	start := time.Now()
	h.metrics.received.Inc()
	log.Infow("Submission received",
		"client_ip", c.ClientIP(),
		"content_type", c.ContentType(),
		"request_id", c.GetString("request_id"))

	// Configuration is checked before the body is touched so a
	// misconfigured deployment fails fast and deterministically.
	if missing := h.emailConfig.MissingKeys(); len(missing) > 0 {
		log.Errorw("Submission rejected, email configuration incomplete", "missing", missing)
		_ = c.Error(apperrors.MissingConfig(missing))
		return
	}

	fields := form.Decode(c.Request)
	log.Debugw("Submission body decoded",
		"field_count", len(fields),
		"elapsed", time.Since(start))

	if form.IsSpam(fields) {
		h.metrics.spam.Inc()
		log.Infow("Honeypot triggered, submission silently dropped", "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, types.AcceptedResponse{OK: true})
		return
	}

	sub, fieldErrs := form.Validate(fields, form.Policy{
		RequireWorkEmail: h.formConfig.RequireWorkEmail,
		BlockedDomains:   h.formConfig.BlockedEmailDomains,
	})
	if fieldErrs != nil {
		h.metrics.rejected.Inc()
		log.Infow("Submission failed validation", "fields", fieldKeys(fieldErrs))
		_ = c.Error(apperrors.ValidationFailed(validationMessage(fieldErrs), fieldErrs))
		return
	}
	log.Debugw("Submission validated", "email", logger.MaskEmail(sub.Email))

	html, err := form.RenderNotification(sub, time.Now())
	if err != nil {
		log.Errorw("Failed to render notification", "error", err)
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Failed to render notification"))
		return
	}

	msg := &types.OutboundMessage{
		From:    fmt.Sprintf("%s <%s>", h.emailConfig.FromName, h.emailConfig.FromAddress),
		To:      h.emailConfig.ToAddress,
		Subject: registerSubject,
		HTML:    html,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.emailConfig.TimeoutSeconds)*time.Second)
	defer cancel()

	result, err := h.sender.Send(ctx, msg)
	if err != nil {
		h.metrics.failed.Inc()
		log.Errorw("Delivery failed",
			"error", err,
			"elapsed", time.Since(start))
		_ = c.Error(apperrors.DeliveryFailed(map[string]interface{}{"error": err.Error()}))
		return
	}
	if !result.Delivered {
		h.metrics.failed.Inc()
		log.Errorw("Provider rejected submission",
			"status", result.StatusCode,
			"payload", result.Payload,
			"elapsed", time.Since(start))
		_ = c.Error(apperrors.DeliveryFailed(result.Payload))
		return
	}

	h.metrics.delivered.Inc()
	log.Infow("Submission delivered",
		"id", result.ID,
		"elapsed", time.Since(start))

	var id *string
	if result.ID != "" {
		id = &result.ID
	}
	c.JSON(http.StatusOK, types.SubmitResponse{OK: true, ID: id})
}

func fieldKeys(fieldErrs map[string]string) []string {
	keys := make([]string, 0, len(fieldErrs))
	for k := range fieldErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validationMessage(fieldErrs map[string]string) string {
	if fieldErrs["name"] != "" && fieldErrs["email"] != "" {
		return "Missing name or email"
	}
	return fmt.Sprintf("Invalid fields: %s", strings.Join(fieldKeys(fieldErrs), ", "))
}
