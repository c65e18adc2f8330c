package cli

import (
	"fmt"
	"io"
	"os"

	"timecard-report/internal/models"
	"timecard-report/internal/services"
	"timecard-report/internal/utils"
	"timecard-report/internal/validation"
)

// loadEvents reads punch events from path, or from stdin when path is "-"
func loadEvents(path string, stdin io.Reader) ([]models.PunchEvent, error) {
	var (
		body []byte
		err  error
	)
	if path == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	events, err := validation.ParseEventsDocument(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return events, nil
}

// inPeriod keeps the events dated within [start, end]. Empty bounds are
// open. ISO dates compare correctly as strings.
func inPeriod(events []models.PunchEvent, start, end string) []models.PunchEvent {
	if start == "" && end == "" {
		return events
	}
	kept := make([]models.PunchEvent, 0, len(events))
	for _, event := range events {
		if start != "" && event.Date < start {
			continue
		}
		if end != "" && event.Date > end {
			continue
		}
		kept = append(kept, event)
	}
	return kept
}

func checkPeriod(start, end string) error {
	if err := utils.ValidatePeriod(start, end); err != nil {
		return fmt.Errorf("%w: %v", services.ErrInvalidPeriod, err)
	}
	return nil
}

// checkBounds validates an optional, possibly half-open, period
func checkBounds(start, end string) error {
	if start != "" && end != "" {
		return checkPeriod(start, end)
	}
	for _, date := range []string{start, end} {
		if date == "" {
			continue
		}
		if _, err := utils.ParseDate(date); err != nil {
			return fmt.Errorf("%w: %q is not YYYY-MM-DD", services.ErrInvalidPeriod, date)
		}
	}
	return nil
}

func unsupportedFormat(format models.ExportFormat) error {
	return fmt.Errorf("%w: %q (use xlsx or pdf)", services.ErrUnsupportedFormat, format)
}
