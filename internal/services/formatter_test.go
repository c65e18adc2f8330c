package services

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"

	"timecard-report/internal/models"
	"timecard-report/internal/timecard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func event(date, clock string) models.PunchEvent {
	return models.PunchEvent{ID: date + clock, Date: date, Time: clock, Type: models.PunchTypeEntry}
}

func sampleReport() *models.PeriodReport {
	report := timecard.Generate([]models.PunchEvent{
		event("2024-03-04", "08:00:00.000"),
		event("2024-03-04", "09:45:00.000"),
		event("2024-03-05", "08:00:00.000"),
		event("2024-03-05", "10:30:00.000"),
		event("2024-03-06", "08:00:00.000"),
	})
	return &report
}

func sampleMeta() models.ExportMeta {
	return models.ExportMeta{EmployeeName: "Maria Souza", StartDate: "2024-03-01", EndDate: "2024-03-31"}
}

func readSheet(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestExcelService_Render(t *testing.T) {
	data, err := NewExcelService().Render(sampleReport(), sampleMeta())
	require.NoError(t, err)

	rows := readSheet(t, data)
	require.Len(t, rows, 5)
	assert.Equal(t, timecard.ColumnHeaders(), rows[0])
	assert.Equal(t, []string{"04/03/2024", "Segunda", "08:00:00", "09:45:00", "-", "-", "-", "-", "01:45"}, rows[1])
	assert.Equal(t, []string{"05/03/2024", "Terça", "08:00:00", "10:30:00", "-", "-", "-", "-", "02:30"}, rows[2])
	assert.Equal(t, []string{"06/03/2024", "Quarta", "08:00:00", "-", "-", "-", "-", "-", "ND"}, rows[3])
	assert.Equal(t, []string{"", "", "", "", "", "", "", "", "Total: 04:15"}, rows[4])
}

func TestExcelService_EmptyReport(t *testing.T) {
	report := timecard.Generate(nil)

	data, err := NewExcelService().Render(&report, sampleMeta())
	require.NoError(t, err)

	rows := readSheet(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total: 00:00", rows[1][len(rows[1])-1])
}

func TestExcelService_RenderIsStable(t *testing.T) {
	excel := NewExcelService()
	first, err := excel.Render(sampleReport(), sampleMeta())
	require.NoError(t, err)
	second, err := excel.Render(sampleReport(), sampleMeta())
	require.NoError(t, err)

	assert.Equal(t, readSheet(t, first), readSheet(t, second))
}

func TestExcelService_NilReport(t *testing.T) {
	_, err := NewExcelService().Render(nil, sampleMeta())
	assert.Error(t, err)
}

func TestPDFService_Render(t *testing.T) {
	data, err := NewPDFService().Render(sampleReport(), sampleMeta())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, 1, pageCount(t, data))
}

func TestPDFService_RenderIsByteStable(t *testing.T) {
	pdf := NewPDFService()
	first, err := pdf.Render(sampleReport(), sampleMeta())
	require.NoError(t, err)
	second, err := pdf.Render(sampleReport(), sampleMeta())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPDFService_PaginatesLongPeriods(t *testing.T) {
	var events []models.PunchEvent
	for day := 1; day <= 28; day++ {
		for month := 1; month <= 4; month++ {
			date := "2024-0" + strconv.Itoa(month) + "-" + twoDigits(day)
			events = append(events, event(date, "08:00:00.000"), event(date, "17:00:00.000"))
		}
	}
	report := timecard.Generate(events)

	data, err := NewPDFService().Render(&report, sampleMeta())
	require.NoError(t, err)
	assert.Greater(t, pageCount(t, data), 1)
}

func TestPDFService_EmptyReport(t *testing.T) {
	report := timecard.Generate(nil)

	data, err := NewPDFService().Render(&report, models.ExportMeta{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, data))
}

func TestRenderArtifact_NamesFile(t *testing.T) {
	artifact, err := RenderArtifact(NewExcelService(), sampleReport(), sampleMeta())
	require.NoError(t, err)
	assert.Equal(t, "relatorio-ponto-2024-03-01-2024-03-31.xlsx", artifact.Filename)
	assert.Equal(t, xlsxContentType, artifact.ContentType)
	assert.NotEmpty(t, artifact.Data)

	artifact, err = RenderArtifact(NewPDFService(), sampleReport(), sampleMeta())
	require.NoError(t, err)
	assert.Equal(t, "relatorio-ponto-2024-03-01-2024-03-31.pdf", artifact.Filename)
	assert.Equal(t, pdfContentType, artifact.ContentType)
}

func TestFormatters_DoNotMutateReport(t *testing.T) {
	report := sampleReport()
	before := *report
	before.Rows = append([]models.ReportRow(nil), report.Rows...)

	_, err := NewExcelService().Render(report, sampleMeta())
	require.NoError(t, err)
	_, err = NewPDFService().Render(report, sampleMeta())
	require.NoError(t, err)

	assert.Equal(t, before, *report)
}

var pagesCountPattern = regexp.MustCompile(`/Type /Pages[\s\S]*?/Count (\d+)`)

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	match := pagesCountPattern.FindSubmatch(data)
	require.NotNil(t, match, "pages object not found")
	n, err := strconv.Atoi(string(match[1]))
	require.NoError(t, err)
	return n
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
