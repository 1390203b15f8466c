// Package config handles loading and validation of application configuration
// from environment variables and an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AdviTravel/advitravel-backend/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	// StaticDir is the directory holding the built landing page. Empty
	// disables static serving (e.g. when a CDN fronts the site).
	StaticDir string `mapstructure:"STATIC_DIR" yaml:"static_dir"`
}

// EmailConfig holds configuration for relaying submissions through Resend.
type EmailConfig struct {
	FromAddress    string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName       string `mapstructure:"FROM_NAME" yaml:"from_name"`
	ToAddress      string `mapstructure:"TO_ADDRESS" yaml:"to_address"`
	ResendAPIKey   string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
	BaseURL        string `mapstructure:"BASE_URL" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
	// UseSDK selects the Resend Go SDK; false switches to the plain REST
	// client, which is functionally identical.
	UseSDK bool `mapstructure:"USE_SDK" yaml:"use_sdk"`
}

// MissingKeys returns the environment variable names of required email
// settings that are absent. An empty slice means the service can deliver.
func (c *EmailConfig) MissingKeys() []string {
	var missing []string
	if c.ResendAPIKey == "" {
		missing = append(missing, "RESEND_API_KEY")
	}
	if c.FromAddress == "" {
		missing = append(missing, "FROM_EMAIL")
	}
	if c.ToAddress == "" {
		missing = append(missing, "TO_EMAIL")
	}
	return missing
}

// FormConfig holds policy settings for the investor form.
type FormConfig struct {
	// RequireWorkEmail rejects consumer-grade email domains when true.
	RequireWorkEmail bool `mapstructure:"REQUIRE_WORK_EMAIL" yaml:"require_work_email"`
	// BlockedEmailDomains is the deny-list applied in work-email mode.
	BlockedEmailDomains []string `mapstructure:"BLOCKED_EMAIL_DOMAINS" yaml:"blocked_email_domains"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server ServerConfig `mapstructure:"SERVER" yaml:"server"`
	Email  EmailConfig  `mapstructure:"EMAIL" yaml:"email"`
	Form   FormConfig   `mapstructure:"FORM" yaml:"form"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
//
// Missing email settings do not abort startup: readiness is evaluated per
// request so a misconfigured deployment answers with the missing key names
// instead of crash-looping.
func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production where no .env exists.
	_ = godotenv.Load()

	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.STATIC_DIR", "")
	v.SetDefault("EMAIL.FROM_NAME", "Percy — AdviTravel")
	v.SetDefault("EMAIL.BASE_URL", "https://api.resend.com")
	v.SetDefault("EMAIL.TIMEOUT_SECONDS", 12)
	v.SetDefault("EMAIL.USE_SDK", true)
	v.SetDefault("FORM.REQUIRE_WORK_EMAIL", true)
	v.SetDefault("FORM.BLOCKED_EMAIL_DOMAINS", []string{
		"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com", "icloud.com",
	})
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables
	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.STATIC_DIR", "STATIC_DIR"},
		// Email config. The names match what the hosting platform has
		// carried since the first deployment.
		{"EMAIL.FROM_ADDRESS", "FROM_EMAIL"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.TO_ADDRESS", "TO_EMAIL"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		{"EMAIL.BASE_URL", "EMAIL_BASE_URL"},
		{"EMAIL.TIMEOUT_SECONDS", "EMAIL_TIMEOUT_SECONDS"},
		{"EMAIL.USE_SDK", "EMAIL_USE_SDK"},
		// Form config
		{"FORM.REQUIRE_WORK_EMAIL", "FORM_REQUIRE_WORK_EMAIL"},
		{"FORM.BLOCKED_EMAIL_DOMAINS", "FORM_BLOCKED_EMAIL_DOMAINS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"email_from", logger.MaskEmail(cfg.Email.FromAddress),
		"email_to", logger.MaskEmail(cfg.Email.ToAddress),
		"resend_api_key", logger.MaskSensitiveString(cfg.Email.ResendAPIKey, 3, 2),
		"email_timeout_seconds", cfg.Email.TimeoutSeconds,
		"require_work_email", cfg.Form.RequireWorkEmail,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	// Validate AllowedOrigins format if not wildcard
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Email.TimeoutSeconds <= 0 {
		return fmt.Errorf("email timeout must be positive")
	}
	if _, err := url.ParseRequestURI(cfg.Email.BaseURL); err != nil {
		return fmt.Errorf("invalid email base URL: %w", err)
	}
	if missing := cfg.Email.MissingKeys(); len(missing) > 0 {
		log.Warnw("Email configuration incomplete, submissions will fail until set",
			"missing", missing)
	}

	if cfg.Form.RequireWorkEmail && len(cfg.Form.BlockedEmailDomains) == 0 {
		log.Warn("Work-email mode enabled with an empty domain deny-list")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
