// Package cli implements the invoiceqc command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoiceqc/internal/config"
	"invoiceqc/internal/logger"
	"invoiceqc/internal/service"
	"invoiceqc/internal/validator"
	"invoiceqc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "invoiceqc",
	Short: "Invoice extraction and quality control",
	Long: `invoiceqc extracts structured invoice data from PDF and text files
and validates batches against completeness, format, business, and
anomaly rules.`,
	Version:      version.Version,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads application config and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return cfg, nil
}

// newPipeline builds the extraction pipeline from config.
func newPipeline(cfg *config.Config) *service.Pipeline {
	engine := validator.NewEngine(validator.Options{
		AmountTolerance: cfg.Validation.AmountTolerance,
		Currencies:      cfg.Validation.Currencies,
	})
	return service.NewPipeline(engine, cfg.Extract.Concurrency)
}
