package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, 3, 10, 0, 0, 1, 0, time.Local)
	night := time.Date(2025, 3, 10, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, SameCalendarDay(morning, night))
	assert.False(t, SameCalendarDay(night, nextDay))
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name     string
		t        time.Time
		expected string
	}{
		{"same day is Today", time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local), LabelToday},
		{"previous calendar day is Yesterday", time.Date(2025, 3, 9, 23, 0, 0, 0, time.Local), LabelYesterday},
		{"older dates use dd/MM/yyyy", time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local), "01/03/2025"},
		{"future dates use dd/MM/yyyy", time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local), "12/03/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayLabel(tt.t, now))
		})
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "March 2025", MonthLabel(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)))
}

func TestFromMillis(t *testing.T) {
	instant := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	assert.True(t, FromMillis(instant.UnixMilli()).Equal(instant))
}
