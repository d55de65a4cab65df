package cli

import (
	"github.com/spf13/cobra"

	"invoiceqc/internal/report"
)

var fullRunCmd = &cobra.Command{
	Use:   "full-run",
	Short: "Extract invoices from files and validate them in one step",
	RunE:  runFullRun,
}

func init() {
	rootCmd.AddCommand(fullRunCmd)

	fullRunCmd.Flags().StringP("pdf-dir", "p", "", "Directory containing invoice files")
	fullRunCmd.Flags().StringP("report", "r", "validation_report.json", "Output validation report JSON file path")
	fullRunCmd.Flags().StringP("save-extracted", "s", "", "Also save extracted invoices to this JSON file")
	fullRunCmd.Flags().Bool("fail-on-invalid", false, "Exit with non-zero status if any invoices are invalid")
	_ = fullRunCmd.MarkFlagRequired("pdf-dir")
}

func runFullRun(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("pdf-dir")
	reportPath, _ := cmd.Flags().GetString("report")
	saveExtracted, _ := cmd.Flags().GetString("save-extracted")
	failOnInvalid, _ := cmd.Flags().GetBool("fail-on-invalid")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Running full extraction and validation pipeline")
	cmd.Printf("Input directory: %s\n", dir)

	pipeline := newPipeline(cfg)

	cmd.Println("\n[1/2] Extracting invoices...")
	invoices, failures, err := pipeline.ExtractDir(cmd.Context(), dir)
	if err != nil {
		return err
	}
	printFailures(cmd, failures)
	if len(invoices) == 0 {
		return errNothingExtracted
	}
	cmd.Printf("      Extracted %d invoice(s)\n", len(invoices))

	if saveExtracted != "" {
		if err := writeExtracted(invoices, saveExtracted); err != nil {
			return err
		}
		cmd.Printf("      Saved extracted invoices to: %s\n", saveExtracted)
	}

	cmd.Println("\n[2/2] Validating invoices...")
	rep := pipeline.Validate(invoices)
	if err := writeReport(rep, reportPath); err != nil {
		return err
	}

	cmd.Println("\n" + report.FormatSummary(rep.Summary))
	cmd.Printf("\n[OK] Validation report saved to: %s\n", reportPath)

	if failOnInvalid && rep.Summary.InvalidInvoices > 0 {
		return errInvalidInvoices
	}
	return nil
}
