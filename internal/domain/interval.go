package domain

import (
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Interval is a half-open time-of-day range [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewInterval builds an interval starting at start and lasting durationMinutes
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// IsValid reports whether both bounds are valid and End is strictly after Start
func (i Interval) IsValid() bool {
	return i.Start.Validate() == nil && i.End.Validate() == nil && i.End.IsAfter(i.Start)
}

// Overlaps reports whether the two intervals share any moment.
// Adjacent intervals ([10:00,11:00) and [11:00,12:00)) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// DurationMinutes returns the interval length
func (i Interval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// Contains reports whether other lies entirely within i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !other.End.IsAfter(i.End)
}
