package entity

import "time"

type ResourceType string

const (
	ResourceTypeZone         ResourceType = "zone"
	ResourceTypeProfessional ResourceType = "professional"
)

// AvailabilityWindow is a recurring weekly open interval for a resource.
// Minutes are counted from midnight in the club's local time.
type AvailabilityWindow struct {
	ID           string       `json:"id"`
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   string       `json:"resource_id"`
	Weekday      time.Weekday `json:"weekday"`
	OpenMinute   int          `json:"open_minute"`
	CloseMinute  int          `json:"close_minute"`
}

// Block is a one-off closed interval (vacation, maintenance). Blocks take
// precedence over open windows covering the same instant.
type Block struct {
	ID           string       `json:"id"`
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   string       `json:"resource_id"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	Reason       string       `json:"reason,omitempty"`
}

// Availability is the answer to "is this slot free?". Reason is only set when
// Available is false and distinguishes a double booking from working hours
// from an explicit block.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

const (
	ReasonDoubleBooked     = "slot already booked"
	ReasonOutsideHours     = "outside working hours"
	ReasonBlocked          = "explicitly blocked"
	ReasonProfessionalBusy = "professional already booked"
)

// Overlaps reports half-open interval intersection: [aStart,aEnd) and
// [bStart,bEnd) conflict only when each starts before the other ends, so
// adjacent intervals sharing an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CoveredByWindows reports whether [start,end) falls entirely inside the open
// windows defined for a resource. An empty window list means always open.
// Intervals spanning midnight are treated as outside a single day's window.
func CoveredByWindows(windows []*AvailabilityWindow, start, end time.Time) bool {
	if len(windows) == 0 {
		return true
	}

	startMinute := start.Hour()*60 + start.Minute()
	endMinute := end.Hour()*60 + end.Minute()
	sameDay := start.Year() == end.Year() && start.YearDay() == end.YearDay()
	if !sameDay {
		if endMinute != 0 {
			// Spans into the next day; no single-day window covers it
			return false
		}
		// Ends exactly at the following midnight
		endMinute = 24 * 60
	}

	for _, w := range windows {
		if w.Weekday != start.Weekday() {
			continue
		}
		if startMinute >= w.OpenMinute && endMinute <= w.CloseMinute {
			return true
		}
	}
	return false
}
