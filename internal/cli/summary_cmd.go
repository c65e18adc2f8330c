package cli

import (
	"fmt"

	"timecard-report/internal/timecard"

	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var input, start, end string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the period table and total hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkBounds(start, end); err != nil {
				return err
			}

			events, err := loadEvents(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			report := timecard.Generate(inPeriod(events, start, end))
			fmt.Fprint(cmd.OutOrStdout(), renderReport(report, app.styled()))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSON file with punch events (- for stdin)")
	cmd.Flags().StringVar(&start, "start", "", "First date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last date to include (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
