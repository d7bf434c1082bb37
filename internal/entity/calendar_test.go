package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	// 2025-06-02 is a Monday
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 30), at(11, 30)))
	assert.True(t, Overlaps(at(10, 0), at(12, 0), at(10, 30), at(11, 0)))
	assert.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 0), at(11, 0)))

	// Shared endpoint is not a conflict: [10,11) and [11,12) are adjacent
	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(11, 0), at(12, 0)))
	assert.False(t, Overlaps(at(11, 0), at(12, 0), at(10, 0), at(11, 0)))

	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(14, 0), at(15, 0)))
}

func TestCoveredByWindows_EmptyMeansOpen(t *testing.T) {
	assert.True(t, CoveredByWindows(nil, at(3, 0), at(4, 0)))
}

func TestCoveredByWindows(t *testing.T) {
	windows := []*AvailabilityWindow{
		{Weekday: time.Monday, OpenMinute: 9 * 60, CloseMinute: 21 * 60},
	}

	assert.True(t, CoveredByWindows(windows, at(9, 0), at(10, 0)))
	assert.True(t, CoveredByWindows(windows, at(20, 0), at(21, 0)))

	// Straddling either edge of the window
	assert.False(t, CoveredByWindows(windows, at(8, 30), at(9, 30)))
	assert.False(t, CoveredByWindows(windows, at(20, 30), at(21, 30)))
	assert.False(t, CoveredByWindows(windows, at(7, 0), at(8, 0)))

	// Wrong weekday
	tuesday := at(10, 0).AddDate(0, 0, 1)
	assert.False(t, CoveredByWindows(windows, tuesday, tuesday.Add(time.Hour)))
}

func TestCoveredByWindows_Midnight(t *testing.T) {
	allDay := []*AvailabilityWindow{
		{Weekday: time.Monday, OpenMinute: 0, CloseMinute: 24 * 60},
	}

	// Ending exactly at the next midnight stays within Monday's window
	assert.True(t, CoveredByWindows(allDay, at(23, 0), at(23, 0).Add(time.Hour)))

	// Spilling past midnight does not
	assert.False(t, CoveredByWindows(allDay, at(23, 30), at(23, 30).Add(time.Hour)))
}
