package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AdviTravel/advitravel-backend/config"
	"github.com/AdviTravel/advitravel-backend/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	cfg       *config.Config
	startTime time.Time
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// LivenessCheck handles kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck reports whether the email relay is fully configured. The
// process stays up either way; a missing key only degrades the service.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	health := h.check()

	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// DetailedHealth provides detailed health information
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.check())
}

func (h *HealthHandler) check() types.HealthCheck {
	emailComponent := types.HealthComponent{Status: types.HealthStatusUp}
	overall := types.HealthStatusUp

	if missing := h.cfg.Email.MissingKeys(); len(missing) > 0 {
		emailComponent = types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: fmt.Sprintf("missing configuration: %s", strings.Join(missing, ", ")),
		}
		overall = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status: overall,
		Components: map[string]types.HealthComponent{
			"email": emailComponent,
		},
		Version:   h.cfg.Server.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
}
