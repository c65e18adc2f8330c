package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"timecard-report/internal/models"
	"timecard-report/internal/services"
	"timecard-report/internal/timecard"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var input, start, end, format, employee, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the period report as xlsx or pdf",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPeriod(start, end); err != nil {
				return err
			}
			formatter, err := app.formatter(models.ExportFormat(format))
			if err != nil {
				return err
			}

			events, err := loadEvents(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			report := timecard.Generate(inPeriod(events, start, end))
			meta := models.ExportMeta{EmployeeName: employee, StartDate: start, EndDate: end}
			if meta.EmployeeName == "" {
				meta.EmployeeName = "N/A"
			}

			artifact, err := services.RenderArtifact(formatter, &report, meta)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			path := filepath.Join(out, artifact.Filename)
			if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d days, total %s)\n", path, len(report.Rows), report.Total.Formatted)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSON file with punch events (- for stdin)")
	cmd.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", string(models.ExportFormatXLSX), "Output format: xlsx or pdf")
	cmd.Flags().StringVar(&employee, "employee", "", "Employee name printed on the document")
	cmd.Flags().StringVar(&out, "out", ".", "Output directory")
	for _, name := range []string{"input", "start", "end"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
