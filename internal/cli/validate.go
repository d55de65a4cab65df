package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/report"
)

var errInvalidInvoices = errors.New("batch contains invalid invoices")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate invoices from a JSON file",
	Long: `Reads extracted invoice JSON, runs the validation rules, and
writes a report with per-invoice results and summary statistics.`,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("input", "i", "", "Input JSON file containing extracted invoices")
	validateCmd.Flags().StringP("report", "r", "validation_report.json", "Output validation report JSON file path")
	validateCmd.Flags().Bool("fail-on-invalid", false, "Exit with non-zero status if any invoices are invalid")
	_ = validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	reportPath, _ := cmd.Flags().GetString("report")
	failOnInvalid, _ := cmd.Flags().GetBool("fail-on-invalid")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Printf("Validating invoices from: %s\n", input)

	invoices, err := readInvoices(input)
	if err != nil {
		return err
	}

	rep := newPipeline(cfg).Validate(invoices)
	if err := writeReport(rep, reportPath); err != nil {
		return err
	}

	cmd.Println("\n" + report.FormatSummary(rep.Summary))
	cmd.Printf("\n[OK] Validation report saved to: %s\n", reportPath)
	printInvalid(cmd, rep.PerInvoiceResults)

	if failOnInvalid && rep.Summary.InvalidInvoices > 0 {
		return errInvalidInvoices
	}
	return nil
}

func readInvoices(path string) ([]domain.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var invoices []domain.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("invalid JSON in input file: %w", err)
	}
	return invoices, nil
}

func writeReport(rep domain.ValidationReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func printInvalid(cmd *cobra.Command, results []domain.InvoiceValidationResult) {
	var invalid []domain.InvoiceValidationResult
	for _, r := range results {
		if !r.IsValid {
			invalid = append(invalid, r)
		}
	}
	if len(invalid) == 0 {
		return
	}
	cmd.Println("\nInvalid Invoices:")
	for i, r := range invalid {
		if i == 5 {
			cmd.Printf("  ... and %d more invalid invoices\n", len(invalid)-5)
			break
		}
		cmd.Printf("  %s:\n", r.InvoiceID)
		for _, e := range r.Errors {
			cmd.Printf("    - %s\n", e)
		}
	}
}
