package services

import (
	"fmt"

	"timecard-report/internal/models"
	"timecard-report/internal/timecard"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the single worksheet of the spreadsheet export
	SheetName = "Cartão de Ponto"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExcelService renders period reports as xlsx workbooks
type ExcelService struct{}

// NewExcelService creates a new spreadsheet formatter
func NewExcelService() *ExcelService {
	return &ExcelService{}
}

func (s *ExcelService) Format() models.ExportFormat { return models.ExportFormatXLSX }

func (s *ExcelService) ContentType() string { return xlsxContentType }

// Render writes one header row, one row per report row and a trailing
// total row whose only value is "Total: HH:MM" in the last column. All
// cells are strings.
func (s *ExcelService) Render(report *models.PeriodReport, _ models.ExportMeta) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("invalid report data")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := timecard.ColumnHeaders()
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"428BCA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", toCells(headers)); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	rowNum := 2
	for _, row := range report.Rows {
		values := make([]string, 0, len(headers))
		values = append(values, row.FormattedDate, row.DayOfWeek)
		values = append(values, row.Times...)
		values = append(values, row.Daily.Formatted)

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, cell, toCells(values)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		rowNum++
	}

	// Total row: every column blank except the last
	totalCell := fmt.Sprintf("%s%d", lastCol, rowNum)
	if err := f.SetCellStr(SheetName, totalCell, "Total: "+report.Total.Formatted); err != nil {
		return nil, fmt.Errorf("failed to write total: %w", err)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 12)
	_ = f.SetColWidth(SheetName, "B", "B", 10)
	_ = f.SetColWidth(SheetName, "C", "H", 12)
	_ = f.SetColWidth(SheetName, lastCol, lastCol, 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to generate spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func toCells(values []string) *[]interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}
