package cli

import (
	"timecard-report/internal/models"
	"timecard-report/internal/services"

	"github.com/spf13/cobra"
)

// App holds what the offline commands need. Styled reports whether
// output goes to a terminal and may carry colors.
type App struct {
	Formatters []services.ReportFormatter
	Styled     func() bool
}

func (a *App) formatter(format models.ExportFormat) (services.ReportFormatter, error) {
	for _, f := range a.Formatters {
		if f.Format() == format {
			return f, nil
		}
	}
	return nil, unsupportedFormat(format)
}

func (a *App) styled() bool {
	return a.Styled != nil && a.Styled()
}

// NewRootCmd creates the top-level "timecard" command
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timecard",
		Short:         "Attendance reports from exported punch events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSummaryCmd(app),
		newExportCmd(app),
	)

	return root
}
