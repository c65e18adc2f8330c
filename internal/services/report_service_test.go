package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"timecard-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entrySourceStub struct {
	mu     sync.Mutex
	events []models.PunchEvent
	err    error
	calls  int
}

func (s *entrySourceStub) GetTimeEntries(_ context.Context, _ *models.Session, _, _ string) ([]models.PunchEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func sampleEvents() []models.PunchEvent {
	return []models.PunchEvent{
		event("2024-03-05", "10:30:00.000"),
		event("2024-03-04", "09:45:00.000"),
		event("2024-03-05", "08:00:00.000"),
		event("2024-03-04", "08:00:00.000"),
	}
}

func newReportService(source EntrySource) *ReportService {
	return NewReportService(source, NewExcelService(), NewPDFService())
}

func TestReportService_View(t *testing.T) {
	service := newReportService(&entrySourceStub{events: sampleEvents()})

	response, err := service.View(context.Background(), testSession(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.True(t, response.Searched)
	assert.Equal(t, 4, response.EntryCount)
	assert.Empty(t, response.Error)
	require.Len(t, response.Report.Rows, 2)
	assert.Equal(t, "04:15", response.Report.Total.Formatted)
}

func TestReportService_View_UpstreamFailureDegrades(t *testing.T) {
	service := newReportService(&entrySourceStub{err: fmt.Errorf("%w: timeout", ErrUpstreamUnavailable)})

	response, err := service.View(context.Background(), testSession(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.True(t, response.Searched)
	assert.Zero(t, response.EntryCount)
	assert.Empty(t, response.Report.Rows)
	assert.Equal(t, "00:00", response.Report.Total.Formatted)
	assert.Contains(t, response.Error, "upstream service unavailable")
}

func TestReportService_InvalidPeriodSkipsUpstream(t *testing.T) {
	source := &entrySourceStub{events: sampleEvents()}
	service := newReportService(source)

	_, err := service.View(context.Background(), testSession(), "2024-03-31", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, _, err = service.Export(context.Background(), testSession(), "2024-13-01", "2024-03-01", models.ExportFormatPDF)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Zero(t, source.calls)
}

func TestReportService_Export(t *testing.T) {
	service := newReportService(&entrySourceStub{events: sampleEvents()})

	artifact, report, err := service.Export(context.Background(), testSession(), "2024-03-01", "2024-03-31", models.ExportFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "relatorio-ponto-2024-03-01-2024-03-31.xlsx", artifact.Filename)
	assert.Equal(t, "04:15", report.Total.Formatted)

	rows := readSheet(t, artifact.Data)
	assert.Equal(t, "Total: 04:15", rows[len(rows)-1][8])
}

func TestReportService_ExportErrors(t *testing.T) {
	service := newReportService(&entrySourceStub{err: fmt.Errorf("%w: down", ErrUpstreamUnavailable)})

	_, _, err := service.Export(context.Background(), testSession(), "2024-03-01", "2024-03-31", "csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = service.Export(context.Background(), testSession(), "2024-03-01", "2024-03-31", models.ExportFormatPDF)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestExportMetaFor_FallsBackToEmail(t *testing.T) {
	meta := ExportMetaFor(&models.Session{Email: "maria@example.com"}, "2024-03-01", "2024-03-31")
	assert.Equal(t, "maria@example.com", meta.EmployeeName)

	meta = ExportMetaFor(nil, "2024-03-01", "2024-03-31")
	assert.Equal(t, "N/A", meta.EmployeeName)
}
