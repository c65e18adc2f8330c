package timecard

import (
	"sort"

	"timecard-report/internal/models"
)

// Generate runs the whole pipeline over an unordered event set
func Generate(events []models.PunchEvent) models.PeriodReport {
	return BuildPeriodReport(GroupByDate(events))
}

// BuildPeriodReport produces one row per date, ascending, and the period
// total. The total adds each day's hour and minute components separately
// and carries minutes into hours exactly once, after the loop. ND days
// contribute nothing.
func BuildPeriodReport(days map[string][]models.PunchEvent) models.PeriodReport {
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]models.ReportRow, 0, len(dates))
	totalHours, totalMinutes := 0, 0
	for _, date := range dates {
		events := sortedCopy(days[date])
		daily := CalculateDailyHours(events)
		totalHours += daily.Hours
		totalMinutes += daily.Minutes
		rows = append(rows, buildRow(date, events, daily))
	}

	return models.PeriodReport{
		Rows:  rows,
		Total: periodTotal(totalHours, totalMinutes),
	}
}

// TotalOf recomputes the period total from rows already built
func TotalOf(rows []models.ReportRow) models.PeriodTotal {
	totalHours, totalMinutes := 0, 0
	for _, row := range rows {
		totalHours += row.Daily.Hours
		totalMinutes += row.Daily.Minutes
	}
	return periodTotal(totalHours, totalMinutes)
}

func periodTotal(totalHours, totalMinutes int) models.PeriodTotal {
	hours := totalHours + totalMinutes/60
	minutes := totalMinutes % 60
	return models.PeriodTotal{
		Hours:     hours,
		Minutes:   minutes,
		Formatted: FormatHM(hours, minutes),
	}
}

func buildRow(date string, events []models.PunchEvent, daily models.DailyResult) models.ReportRow {
	times := make([]string, MaxTimeColumns)
	for i := range times {
		if i < len(events) {
			times[i] = TimeLabel(events[i].Time)
		} else {
			times[i] = Placeholder
		}
	}
	return models.ReportRow{
		Date:          date,
		FormattedDate: FormatDate(date),
		DayOfWeek:     DayOfWeek(date),
		Times:         times,
		PunchCount:    len(events),
		Truncated:     len(events) > MaxTimeColumns,
		Daily:         daily,
	}
}
