package domain

import "github.com/m04kA/DS-SchedulingService/pkg/types"

// Default configuration values
const (
	DefaultOpenTime           types.TimeString = "07:00"
	DefaultCloseTime          types.TimeString = "20:00"
	DefaultGranularityMinutes                  = 30
	DefaultReferenceDuration                   = 60
)

// DefaultDurations candidate lesson durations in minutes
var DefaultDurations = []int{30, 45, 60, 90, 120}

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 120
	MinDurationMinutes    = 15
	MaxDurationMinutes    = 480 // 8 hours
	MaxDurationsCount     = 10
	MaxCommentLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают инструктора
var InactiveStatuses = []LessonStatus{
	StatusCancelled,
}
