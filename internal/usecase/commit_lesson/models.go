package commit_lesson

import (
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

// Request модель запроса на создание занятия
type Request struct {
	SchoolID       int64            // ID школы
	OfficeID       *int64           // ID офиса (опционально)
	InstructorID   int64            // ID инструктора
	StudentID      *int64           // ID ученика (опционально)
	VehicleID      *int64           // ID автомобиля (опционально)
	Date           time.Time        // Дата занятия (без времени)
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время окончания
	Comment        *string          // Комментарий (опционально)
	CreatorID      *int64           // Кто создал занятие (опционально)
	IdempotencyKey string           // Ключ идемпотентности (UUID, опционально)
}

// Response модель ответа с созданным занятием
type Response struct {
	ID           int64
	SchoolID     int64
	OfficeID     *int64
	InstructorID int64
	StudentID    *int64
	VehicleID    *int64
	LessonDate   time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	Comment      *string
	CreatorID    *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Replayed true, если занятие уже было создано запросом с тем же ключом
	Replayed bool
}

func newResponse(l *domain.Lesson, replayed bool) *Response {
	return &Response{
		ID:           l.ID,
		SchoolID:     l.SchoolID,
		OfficeID:     l.OfficeID,
		InstructorID: l.InstructorID,
		StudentID:    l.StudentID,
		VehicleID:    l.VehicleID,
		LessonDate:   l.LessonDate,
		StartTime:    l.StartTime,
		EndTime:      l.EndTime,
		Status:       string(l.Status),
		Comment:      l.Comment,
		CreatorID:    l.CreatorID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		Replayed:     replayed,
	}
}
