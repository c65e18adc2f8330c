package models

// DailyResult is the worked time derived for one date.
// Formatted is "HH:MM", or "ND" when the day cannot be determined
// (zero or odd punch count, or a malformed time value).
type DailyResult struct {
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"` // 0..59
	Formatted string `json:"formatted"`
}

// PeriodTotal is the aggregate worked time across every row of a report
type PeriodTotal struct {
	Hours     int    `json:"hours"`
	Minutes   int    `json:"minutes"`
	Formatted string `json:"formatted"`
}

// ReportRow is one date of a period report. Times holds at most six
// labels; a day with more punches still counts all of them in Daily but
// only shows the first six, in which case Truncated is set.
type ReportRow struct {
	Date          string      `json:"date"`          // YYYY-MM-DD
	FormattedDate string      `json:"formattedDate"` // dd/mm/yyyy
	DayOfWeek     string      `json:"dayOfWeek"`
	Times         []string    `json:"times"` // always six entries, "-" when empty
	PunchCount    int         `json:"punchCount"`
	Truncated     bool        `json:"truncated,omitempty"`
	Daily         DailyResult `json:"daily"`
}

// PeriodReport is the derived table for a requested date range
type PeriodReport struct {
	Rows  []ReportRow `json:"rows"`
	Total PeriodTotal `json:"total"`
}

// ExportMeta carries the header data the document formatter prints
// above the table. It never influences row data.
type ExportMeta struct {
	EmployeeName string
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
}

// Artifact is a rendered export ready to hand to a delivery sink
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}
