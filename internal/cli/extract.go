package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoiceqc/internal/domain"
)

var errNothingExtracted = errors.New("no invoices were extracted")

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract invoices from PDF and text files to JSON",
	Long: `Reads all supported files from the given directory, extracts
structured invoice data, and writes the results to a JSON file.`,
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("pdf-dir", "p", "", "Directory containing invoice files")
	extractCmd.Flags().StringP("output", "o", "extracted_invoices.json", "Output JSON file path")
	_ = extractCmd.MarkFlagRequired("pdf-dir")
}

func runExtract(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("pdf-dir")
	output, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Printf("Extracting invoices from: %s\n", dir)

	invoices, failures, err := newPipeline(cfg).ExtractDir(cmd.Context(), dir)
	if err != nil {
		return err
	}
	printFailures(cmd, failures)
	if len(invoices) == 0 {
		return errNothingExtracted
	}

	if err := writeExtracted(invoices, output); err != nil {
		return err
	}

	cmd.Printf("\n[OK] Extracted %d invoice(s) to: %s\n", len(invoices), output)
	cmd.Println("\nExtracted invoices:")
	for i, inv := range invoices {
		if i == 10 {
			cmd.Printf("  ... and %d more\n", len(invoices)-10)
			break
		}
		cmd.Printf("  - %s | %s | %s %s\n", inv.InvoiceNumber, inv.SellerName, formatAmount(inv.GrossTotal), inv.Currency)
	}
	return nil
}

func writeExtracted(invoices []domain.Invoice, path string) error {
	data, err := json.MarshalIndent(invoices, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding invoices: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printFailures(cmd *cobra.Command, failures []domain.ExtractionFailure) {
	for _, f := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "  [skip] %s: %s\n", f.File, f.Reason)
	}
}

func formatAmount(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
