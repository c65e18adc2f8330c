package cli

import (
	"fmt"
	"strings"

	"timecard-report/internal/models"
	"timecard-report/internal/timecard"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#428BCA")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleND     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB4934"))
	styleTotal  = lipgloss.NewStyle().Bold(true)
)

const colGap = 2

// renderReport lays the report out as an aligned table followed by the
// period total. Rows with more punches than columns are marked with "*".
func renderReport(report models.PeriodReport, styled bool) string {
	paint := func(style lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return style.Render(text)
	}

	headers := timecard.ColumnHeaders()
	rows := make([][]string, 0, len(report.Rows))
	truncated := false
	for _, row := range report.Rows {
		cells := make([]string, 0, len(headers))
		date := row.FormattedDate
		if row.Truncated {
			date += "*"
			truncated = true
		}
		cells = append(cells, date, row.DayOfWeek)
		for _, label := range row.Times {
			if label == timecard.Placeholder {
				label = paint(styleDim, label)
			}
			cells = append(cells, label)
		}
		total := row.Daily.Formatted
		if total == timecard.NotDetermined {
			total = paint(styleND, total)
		}
		rows = append(rows, append(cells, total))
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeLine := func(cells []string, style func(string) string) {
		for i, cell := range cells {
			pad := widths[i] - lipgloss.Width(cell)
			b.WriteString(style(cell))
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeLine(headers, func(s string) string { return paint(styleHeader, s) })
	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("─", w)
	}
	writeLine(separators, func(s string) string { return paint(styleDim, s) })
	for _, row := range rows {
		writeLine(row, func(s string) string { return s })
	}

	if len(rows) == 0 {
		b.WriteString(paint(styleDim, "Nenhuma marcação no período") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(paint(styleTotal, fmt.Sprintf("Total de horas: %s", report.Total.Formatted)) + "\n")
	if truncated {
		b.WriteString(paint(styleDim, fmt.Sprintf("* mais de %d marcações no dia; todas entram no total", timecard.MaxTimeColumns)) + "\n")
	}
	return b.String()
}
