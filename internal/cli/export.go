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

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a validation report as CSV or XLSX",
	Long: `Reads a validation report JSON file and writes reviewer-facing
spreadsheets with one row per invoice.`,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("report", "r", "", "Validation report JSON file to export")
	exportCmd.Flags().String("csv", "", "CSV output file path")
	exportCmd.Flags().String("xlsx", "", "XLSX output file path")
	_ = exportCmd.MarkFlagRequired("report")
}

func runExport(cmd *cobra.Command, args []string) error {
	reportPath, _ := cmd.Flags().GetString("report")
	csvPath, _ := cmd.Flags().GetString("csv")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	if csvPath == "" && xlsxPath == "" {
		return errors.New("nothing to export: pass --csv and/or --xlsx")
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", reportPath, err)
	}
	var rep domain.ValidationReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return fmt.Errorf("invalid JSON in report file: %w", err)
	}

	if csvPath != "" {
		if err := exportCSV(rep, csvPath); err != nil {
			return err
		}
		cmd.Printf("[OK] CSV export saved to: %s\n", csvPath)
	}

	if xlsxPath != "" {
		out, err := report.WriteXLSX(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", xlsxPath, err)
		}
		cmd.Printf("[OK] XLSX export saved to: %s\n", xlsxPath)
	}
	return nil
}

func exportCSV(rep domain.ValidationReport, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(report.BOM); err != nil {
		return err
	}
	w := report.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteResults(rep.PerInvoiceResults); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
