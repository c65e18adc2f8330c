package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"timecard-report/internal/models"
	"timecard-report/internal/timecard"
	"timecard-report/internal/utils"
)

// ReportService fetches punch events for a period, runs them through the
// timecard engine and hands the result to a formatter
type ReportService struct {
	source     EntrySource
	formatters map[models.ExportFormat]ReportFormatter
}

// NewReportService creates a report service over an entry source
func NewReportService(source EntrySource, formatters ...ReportFormatter) *ReportService {
	registry := make(map[models.ExportFormat]ReportFormatter, len(formatters))
	for _, f := range formatters {
		registry[f.Format()] = f
	}
	return &ReportService{
		source:     source,
		formatters: registry,
	}
}

// Formatter returns the formatter registered for format
func (s *ReportService) Formatter(format models.ExportFormat) (ReportFormatter, error) {
	f, ok := s.formatters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f, nil
}

// FetchEntries validates the period and loads its raw punch events
func (s *ReportService) FetchEntries(ctx context.Context, session *models.Session, startDate, endDate string) ([]models.PunchEvent, error) {
	if err := utils.ValidatePeriod(startDate, endDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}

	events, err := s.source.GetTimeEntries(ctx, session, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time entries: %w", err)
	}
	return events, nil
}

// BuildReport fetches a period and derives its report
func (s *ReportService) BuildReport(ctx context.Context, session *models.Session, startDate, endDate string) (*models.PeriodReport, []models.PunchEvent, error) {
	events, err := s.FetchEntries(ctx, session, startDate, endDate)
	if err != nil {
		return nil, nil, err
	}
	report := timecard.Generate(events)
	return &report, events, nil
}

// View builds the on-screen report. A failing time-entry service does not
// fail the view: the search still counts as performed, with no rows and
// the error message attached. Only an invalid period is returned as an
// error.
func (s *ReportService) View(ctx context.Context, session *models.Session, startDate, endDate string) (*models.ReportResponse, error) {
	report, events, err := s.BuildReport(ctx, session, startDate, endDate)
	if errors.Is(err, ErrInvalidPeriod) {
		return nil, err
	}
	if err != nil {
		log.Printf("[REPORT] WARNING: serving empty report for %s..%s: %v", startDate, endDate, err)
		empty := timecard.Generate(nil)
		return &models.ReportResponse{
			Searched: true,
			Report:   empty,
			Error:    err.Error(),
		}, nil
	}

	return &models.ReportResponse{
		Searched:   true,
		EntryCount: len(events),
		Report:     *report,
	}, nil
}

// Export builds the period report and renders it in the requested format
func (s *ReportService) Export(ctx context.Context, session *models.Session, startDate, endDate string, format models.ExportFormat) (*models.Artifact, *models.PeriodReport, error) {
	formatter, err := s.Formatter(format)
	if err != nil {
		return nil, nil, err
	}

	report, _, err := s.BuildReport(ctx, session, startDate, endDate)
	if err != nil {
		return nil, nil, err
	}

	artifact, err := RenderArtifact(formatter, report, ExportMetaFor(session, startDate, endDate))
	if err != nil {
		return nil, nil, err
	}
	return artifact, report, nil
}

// ExportMetaFor builds document header data for a session
func ExportMetaFor(session *models.Session, startDate, endDate string) models.ExportMeta {
	return models.ExportMeta{
		EmployeeName: session.DisplayName(),
		StartDate:    startDate,
		EndDate:      endDate,
	}
}
