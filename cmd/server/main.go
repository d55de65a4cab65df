package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"invoiceqc/internal/config"
	"invoiceqc/internal/handler"
	"invoiceqc/internal/logger"
	"invoiceqc/internal/router"
	"invoiceqc/internal/service"
	"invoiceqc/internal/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	engine := validator.NewEngine(validator.Options{
		AmountTolerance: cfg.Validation.AmountTolerance,
		Currencies:      cfg.Validation.Currencies,
	})
	pipeline := service.NewPipeline(engine, cfg.Extract.Concurrency)

	r := router.Setup(
		handler.NewHealthHandler(),
		handler.NewValidateHandler(pipeline),
		handler.NewExtractHandler(pipeline, cfg.Server.MaxUploadMB),
		handler.NewRulesHandler(),
		cfg.CORS.AllowedOrigins,
	)

	log.Info().Str("addr", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
