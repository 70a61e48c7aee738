package domain

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// LessonStatus represents the status of a lesson
type LessonStatus string

const (
	StatusPlanned   LessonStatus = "planned"
	StatusCompleted LessonStatus = "completed"
	StatusCancelled LessonStatus = "cancelled"
)

// Lesson is a scheduled driving lesson occupying one instructor for one interval on one date
type Lesson struct {
	ID           int64
	SchoolID     int64
	OfficeID     *int64
	InstructorID int64
	StudentID    *int64 // nil when the slot is reserved without a student yet
	VehicleID    *int64
	LessonDate   time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       LessonStatus
	Comment      *string
	CreatorID    *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the lesson time range
func (l *Lesson) Interval() Interval {
	return Interval{Start: l.StartTime, End: l.EndTime}
}

// IsActive returns true if the lesson still occupies its instructor
func (l *Lesson) IsActive() bool {
	return l.Status != StatusCancelled
}

// HasStudent returns true if a student is attached to the lesson
func (l *Lesson) HasStudent() bool {
	return l.StudentID != nil
}

// CanTransitionTo checks the allowed status transitions:
// planned -> completed, planned -> cancelled
func (l *Lesson) CanTransitionTo(next LessonStatus) bool {
	return l.Status == StatusPlanned && (next == StatusCompleted || next == StatusCancelled)
}

// ParseLessonStatus validates a status string
func ParseLessonStatus(s string) (LessonStatus, bool) {
	switch status := LessonStatus(s); status {
	case StatusPlanned, StatusCompleted, StatusCancelled:
		return status, true
	default:
		return "", false
	}
}

// LessonsFilter фильтр для выборки занятий
type LessonsFilter struct {
	SchoolID         int64      // 0 - без фильтра по школе
	OfficeID         *int64     // Фильтр по офису (опционально)
	InstructorIDs    []int64    // Фильтр по инструкторам (опционально, пустой - все)
	StudentID        *int64     // Фильтр по ученику (опционально)
	Date             *time.Time // Конкретная дата (опционально)
	Status           *LessonStatus
	IncludeCancelled bool // Включать ли отменённые занятия
}
