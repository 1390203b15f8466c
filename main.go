package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdviTravel/advitravel-backend/config"
	"github.com/AdviTravel/advitravel-backend/handlers"
	"github.com/AdviTravel/advitravel-backend/internal/resendapi"
	"github.com/AdviTravel/advitravel-backend/logger"
	"github.com/AdviTravel/advitravel-backend/router"
	"github.com/AdviTravel/advitravel-backend/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Both senders speak to the same Resend endpoint; the SDK is the
	// default, the REST client exists for deployments that want to pin
	// the exact wire behavior.
	var sender handlers.EmailSender
	if cfg.Email.UseSDK {
		sender = services.NewEmailService(&cfg.Email)
	} else {
		sender = resendapi.NewClient(cfg.Email.BaseURL, cfg.Email.ResendAPIKey,
			resendapi.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.Email.TimeoutSeconds+3) * time.Second,
			}))
	}

	registerHandler := handlers.NewRegisterHandler(&cfg.Email, &cfg.Form, sender)
	healthHandler := handlers.NewHealthHandler(cfg)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		RegisterHandler: registerHandler,
		HealthHandler:   healthHandler,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Must exceed the provider delivery timeout so slow sends still
		// produce a JSON error response instead of a cut connection.
		WriteTimeout: time.Duration(cfg.Email.TimeoutSeconds+8) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Infow("Server started", "port", cfg.Server.Port, "environment", cfg.Server.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}
}
