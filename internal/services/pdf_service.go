package services

import (
	"bytes"
	"fmt"

	"timecard-report/internal/models"
	"timecard-report/internal/timecard"
	"timecard-report/internal/utils"

	"github.com/jung-kurt/gofpdf/v2"
)

const pdfContentType = "application/pdf"

// Layout of the timecard document, in mm
const (
	pdfMarginX      = 14.0
	pdfTitleY       = 22.0
	pdfEmployeeY    = 32.0
	pdfPeriodY      = 42.0
	pdfTableStartY  = 50.0
	pdfRowHeight    = 6.0
	pdfBottomMargin = 20.0
)

// Column widths: Data, Dia, six punch columns, Total. Sum is 182mm, the
// A4 width minus both margins.
var pdfColumnWidths = []float64{22, 20, 18, 18, 18, 18, 18, 18, 32}

// PDFService handles PDF generation for timecard reports
type PDFService struct{}

// NewPDFService creates a new PDF service
func NewPDFService() *PDFService {
	return &PDFService{}
}

func (s *PDFService) Format() models.ExportFormat { return models.ExportFormatPDF }

func (s *PDFService) ContentType() string { return pdfContentType }

// Render generates the paginated timecard document. The creation date is
// pinned to the period end so the same report always yields the same bytes.
func (s *PDFService) Render(report *models.PeriodReport, meta models.ExportMeta) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("invalid report data")
	}

	// Create PDF document (A4, portrait)
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginX, pdfBottomMargin, pdfMarginX)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.SetCatalogSort(true)
	stamp := utils.PeriodEnd(meta.EndDate)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)

	// Core fonts are cp1252; accented labels must go through the translator
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Set total page count alias for footer
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(108, 117, 125) // Gray
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	s.addHeader(pdf, tr, meta)

	pdf.SetY(pdfTableStartY)
	s.addTableHeader(pdf, tr)

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Arial", "", 8)
	for i, row := range report.Rows {
		// Repeat the header on every new page
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			s.addTableHeader(pdf, tr)
		}
		s.addTableRow(pdf, tr, row, i)
	}

	// Total line 10mm below the table
	totalY := pdf.GetY() + 10
	if totalY > pageHeight-pdfBottomMargin {
		pdf.AddPage()
		totalY = pdfBottomMargin + 10
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(33, 37, 41)
	pdf.Text(pdfMarginX, totalY, tr("Total de horas: "+report.Total.Formatted))

	// Generate PDF bytes
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader prints the title, employee and period lines
func (s *PDFService) addHeader(pdf *gofpdf.Fpdf, tr func(string) string, meta models.ExportMeta) {
	employee := meta.EmployeeName
	if employee == "" {
		employee = "N/A"
	}

	pdf.SetTextColor(33, 37, 41) // Dark gray
	pdf.SetFont("Arial", "B", 16)
	pdf.Text(pdfMarginX, pdfTitleY, tr("Relatório de Ponto"))

	pdf.SetFont("Arial", "", 12)
	pdf.Text(pdfMarginX, pdfEmployeeY, tr("Funcionário: "+employee))
	pdf.Text(pdfMarginX, pdfPeriodY, tr(fmt.Sprintf("Período: %s a %s",
		timecard.FormatDate(meta.StartDate), timecard.FormatDate(meta.EndDate))))
}

// addTableHeader draws the blue header row at the current Y
func (s *PDFService) addTableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(66, 139, 202) // Blue
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetX(pdfMarginX)
	for i, header := range timecard.ColumnHeaders() {
		pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight+1, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(33, 37, 41)
}

func (s *PDFService) addTableRow(pdf *gofpdf.Fpdf, tr func(string) string, row models.ReportRow, index int) {
	// Alternate row colors
	if index%2 == 0 {
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFillColor(245, 245, 245)
	}

	cells := make([]string, 0, len(pdfColumnWidths))
	cells = append(cells, row.FormattedDate, row.DayOfWeek)
	cells = append(cells, row.Times...)
	cells = append(cells, row.Daily.Formatted)

	pdf.SetX(pdfMarginX)
	for i, width := range pdfColumnWidths {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		pdf.CellFormat(width, pdfRowHeight, tr(value), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
