package timecard

import (
	"fmt"
	"strings"
	"time"
)

const (
	// NotDetermined marks a day whose hours cannot be computed
	NotDetermined = "ND"
	// Placeholder fills time columns beyond a day's punch count
	Placeholder = "-"
	// MaxTimeColumns is the number of punch columns shown per row
	MaxTimeColumns = 6
)

// DayNames is the Sunday-first day-of-week table used on every export
var DayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// Column headers shared by the spreadsheet and the document
const (
	HeaderDate  = "Data"
	HeaderDay   = "Dia"
	HeaderTotal = "Total de Horas"
)

// ColumnHeaders returns Data, Dia, Marcação 1..6, Total de Horas
func ColumnHeaders() []string {
	headers := make([]string, 0, MaxTimeColumns+3)
	headers = append(headers, HeaderDate, HeaderDay)
	for i := 1; i <= MaxTimeColumns; i++ {
		headers = append(headers, fmt.Sprintf("Marcação %d", i))
	}
	return append(headers, HeaderTotal)
}

const isoDate = "2006-01-02"

// DayOfWeek returns the localized weekday label for an ISO date, or an
// empty string when the date does not parse.
func DayOfWeek(date string) string {
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return ""
	}
	return DayNames[t.Weekday()]
}

// FormatDate renders an ISO date as dd/mm/yyyy. Unparseable input is
// returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// TimeLabel drops the sub-second part of a punch time
func TimeLabel(clock string) string {
	label, _, _ := strings.Cut(clock, ".")
	return label
}

// FormatHM renders zero-padded HH:MM. Hours are not capped.
func FormatHM(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
