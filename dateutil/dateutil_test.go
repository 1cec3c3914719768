package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekDates(t *testing.T) {
	tests := []struct {
		name      string
		day       time.Time
		wantStart string
		wantEnd   string
	}{
		{"monday", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), "2024-03-04", "2024-03-10"},
		{"midweek", time.Date(2024, 3, 6, 23, 59, 0, 0, time.UTC), "2024-03-04", "2024-03-10"},
		{"sunday", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), "2024-03-04", "2024-03-10"},
		{"across year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2024-12-30", "2025-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekDates(tt.day)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "4 mars 2024", FormatDate("2024-03-04"))
	assert.Equal(t, "10 mars 2024", FormatDate("2024-03-10"))
	assert.Equal(t, "31 december 2023", FormatDate("2023-12-31"))
	assert.Equal(t, "not a date", FormatDate("not a date"))
}

func TestFormatDateShort(t *testing.T) {
	assert.Equal(t, "2024-03-04", FormatDateShort("2024-03-04"))
	assert.Equal(t, "2024-03-04", FormatDateShort("2024-03-04T10:00:00Z"))
	assert.Equal(t, "", FormatDateShort(""))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Month())

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
