package commit_lesson

import (
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	commitLesson "github.com/m04kA/DS-SchedulingService/internal/usecase/commit_lesson"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

const msgLessonCreated = "Занятие успешно создано"

// CommitLessonRequest HTTP request model
type CommitLessonRequest struct {
	Date         string  `json:"date"`  // "2025-06-10"
	Start        string  `json:"start"` // "09:00"
	End          string  `json:"end"`   // "10:00"
	InstructorID int64   `json:"resourceId"`
	SchoolID     int64   `json:"schoolId"`
	OfficeID     *int64  `json:"officeId,omitempty"`
	StudentID    *int64  `json:"subjectId,omitempty"`
	VehicleID    *int64  `json:"vehicleId,omitempty"`
	Comment      *string `json:"comment,omitempty"`
	CreatorID    *int64  `json:"creatorId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в use case request
func (r *CommitLessonRequest) ToUseCaseRequest(idempotencyKey string) (*commitLesson.Request, error) {
	// Пустая дата остаётся нулевой, её отклонит валидация use case
	var date time.Time
	if r.Date != "" {
		parsed, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		date = parsed
	}

	return &commitLesson.Request{
		SchoolID:       r.SchoolID,
		OfficeID:       r.OfficeID,
		InstructorID:   r.InstructorID,
		StudentID:      r.StudentID,
		VehicleID:      r.VehicleID,
		Date:           date,
		StartTime:      types.TimeString(r.Start),
		EndTime:        types.TimeString(r.End),
		Comment:        r.Comment,
		CreatorID:      r.CreatorID,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// CommitLessonResponse HTTP response model
type CommitLessonResponse struct {
	Message       string        `json:"message"`
	BookingRecord BookingRecord `json:"bookingRecord"`
}

type BookingRecord struct {
	ID           int64     `json:"id"`
	SchoolID     int64     `json:"schoolId"`
	OfficeID     *int64    `json:"officeId,omitempty"`
	InstructorID int64     `json:"resourceId"`
	StudentID    *int64    `json:"subjectId,omitempty"`
	VehicleID    *int64    `json:"vehicleId,omitempty"`
	Date         string    `json:"date"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	Status       string    `json:"status"`
	Comment      *string   `json:"comment,omitempty"`
	CreatorID    *int64    `json:"creatorId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitLesson.Response) *CommitLessonResponse {
	return &CommitLessonResponse{
		Message: msgLessonCreated,
		BookingRecord: BookingRecord{
			ID:           resp.ID,
			SchoolID:     resp.SchoolID,
			OfficeID:     resp.OfficeID,
			InstructorID: resp.InstructorID,
			StudentID:    resp.StudentID,
			VehicleID:    resp.VehicleID,
			Date:         resp.LessonDate.Format(domain.DateFormat),
			Start:        resp.StartTime.String(),
			End:          resp.EndTime.String(),
			Status:       resp.Status,
			Comment:      resp.Comment,
			CreatorID:    resp.CreatorID,
			CreatedAt:    resp.CreatedAt,
			UpdatedAt:    resp.UpdatedAt,
		},
	}
}
