package timecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnHeaders(t *testing.T) {
	assert.Equal(t, []string{
		"Data", "Dia",
		"Marcação 1", "Marcação 2", "Marcação 3", "Marcação 4", "Marcação 5", "Marcação 6",
		"Total de Horas",
	}, ColumnHeaders())
}

func TestDayOfWeek(t *testing.T) {
	tests := map[string]string{
		"2024-03-03": "Domingo",
		"2024-03-04": "Segunda",
		"2024-03-05": "Terça",
		"2024-03-06": "Quarta",
		"2024-03-07": "Quinta",
		"2024-03-08": "Sexta",
		"2024-03-09": "Sábado",
		"not-a-date": "",
	}
	for date, want := range tests {
		assert.Equal(t, want, DayOfWeek(date), date)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "29/02/2024", FormatDate("2024-02-29"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}

func TestTimeLabel(t *testing.T) {
	assert.Equal(t, "08:00:00", TimeLabel("08:00:00.123"))
	assert.Equal(t, "08:00", TimeLabel("08:00"))
}

func TestFormatHM(t *testing.T) {
	assert.Equal(t, "00:00", FormatHM(0, 0))
	assert.Equal(t, "08:05", FormatHM(8, 5))
	assert.Equal(t, "123:59", FormatHM(123, 59))
}
