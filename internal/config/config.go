package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Validation ValidationConfig
	Extract    ExtractConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ValidationConfig holds validation engine settings.
type ValidationConfig struct {
	AmountTolerance float64  `mapstructure:"amount_tolerance"`
	Currencies      []string `mapstructure:"currencies"`
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVOICEQC_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOICEQC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 25)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	// Validation defaults
	v.SetDefault("validation.amount_tolerance", 0.01)
	v.SetDefault("validation.currencies", "")

	// Extract defaults
	v.SetDefault("extract.concurrency", 4)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "INVOICEQC_SERVER_PORT",
		"server.read_timeout":         "INVOICEQC_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "INVOICEQC_SERVER_WRITE_TIMEOUT",
		"server.environment":          "INVOICEQC_SERVER_ENVIRONMENT",
		"server.max_upload_mb":        "INVOICEQC_SERVER_MAX_UPLOAD_MB",
		"log.level":                   "INVOICEQC_LOG_LEVEL",
		"log.format":                  "INVOICEQC_LOG_FORMAT",
		"log.output":                  "INVOICEQC_LOG_OUTPUT",
		"validation.amount_tolerance": "INVOICEQC_VALIDATION_AMOUNT_TOLERANCE",
		"validation.currencies":       "INVOICEQC_VALIDATION_CURRENCIES",
		"extract.concurrency":         "INVOICEQC_EXTRACT_CONCURRENCY",
		"cors.allowed_origins":        "INVOICEQC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// INVOICEQC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICEQC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
	cfg.Validation = ValidationConfig{
		AmountTolerance: v.GetFloat64("validation.amount_tolerance"),
		Currencies:      splitList(v.GetString("validation.currencies")),
	}
	cfg.Extract = ExtractConfig{
		Concurrency: v.GetInt("extract.concurrency"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
