package reservation

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeSlot = errors.New("end time must be after start time")

// TimeSlot is a half-open interval [start, end). A slot that starts exactly
// when another ends does not overlap it.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps is the single overlap predicate for the whole system: the SQL
// conflict scan mirrors exactly this clause.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// Title is an optional free-text label on a reservation.
type Title struct {
	value string
}

func NewTitle(value string) Title {
	return Title{value: value}
}

func (t Title) String() string {
	return t.value
}

func (t Title) IsEmpty() bool {
	return t.value == ""
}
