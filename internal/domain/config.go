package domain

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// ScheduleConfig represents the scheduling grid configuration of a school
// Supports hierarchical configuration:
// 1. Office-specific (school_id, office_id)
// 2. School-wide (school_id, NULL)
type ScheduleConfig struct {
	ID                 int64
	SchoolID           int64
	OfficeID           *int64 // NULL = config for all offices
	WorkingHours       Interval
	GranularityMinutes int
	Durations          []int // candidate lesson durations in minutes
	ReferenceDuration  int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultScheduleConfig returns the built-in configuration used when nothing is stored
func DefaultScheduleConfig(schoolID int64) *ScheduleConfig {
	return &ScheduleConfig{
		SchoolID:           schoolID,
		WorkingHours:       Interval{Start: DefaultOpenTime, End: DefaultCloseTime},
		GranularityMinutes: DefaultGranularityMinutes,
		Durations:          append([]int(nil), DefaultDurations...),
		ReferenceDuration:  DefaultReferenceDuration,
	}
}

// IsSchoolWide returns true if this is a school-wide configuration
func (c *ScheduleConfig) IsSchoolWide() bool {
	return c.OfficeID == nil
}

// IsOfficeSpecific returns true if this configuration is for a specific office
func (c *ScheduleConfig) IsOfficeSpecific() bool {
	return c.OfficeID != nil
}

// HasDuration reports whether d is one of the candidate durations
func (c *ScheduleConfig) HasDuration(d int) bool {
	for _, v := range c.Durations {
		if v == d {
			return true
		}
	}
	return false
}

// SlotTimes enumerates grid start times from opening with the configured step,
// keeping only starts strictly before closing
func (c *ScheduleConfig) SlotTimes() []types.TimeString {
	return SlotTimes(c.WorkingHours, c.GranularityMinutes)
}

// SlotTimes enumerates start times in [hours.Start, hours.End) with the given step
func SlotTimes(hours Interval, stepMinutes int) []types.TimeString {
	if stepMinutes <= 0 || !hours.IsValid() {
		return []types.TimeString{}
	}
	open, closing := hours.Start.Minutes(), hours.End.Minutes()
	times := make([]types.TimeString, 0, (closing-open)/stepMinutes+1)
	for m := open; m < closing; m += stepMinutes {
		times = append(times, types.FromMinutes(m))
	}
	return times
}
