package utils

import (
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05.000"
)

// ParseDate parses a date string in YYYY-MM-DD format
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateLayout, dateStr)
}

// FormatDate formats a time.Time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ValidatePeriod checks that both dates parse and start is not after end
func ValidatePeriod(startDate, endDate string) error {
	start, err := ParseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", startDate)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", endDate)
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s is after end_date %s", startDate, endDate)
	}
	return nil
}

// ExportFilename builds relatorio-ponto-<start>-<end>.<ext>
func ExportFilename(startDate, endDate, ext string) string {
	return fmt.Sprintf("relatorio-ponto-%s-%s.%s", startDate, endDate, ext)
}

// LocalTimestamp renders t as wall-clock time in loc with millisecond
// precision, the shape the punch endpoint stores.
func LocalTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(timestampLayout)
}

// LoadLocation resolves an IANA zone name, falling back to UTC
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// PeriodEnd returns midnight UTC of the period's end date. Documents use it
// as their creation date so identical inputs render identical bytes.
func PeriodEnd(endDate string) time.Time {
	t, err := ParseDate(endDate)
	if err != nil {
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}
