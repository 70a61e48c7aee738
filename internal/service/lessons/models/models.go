package models

import (
	"errors"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid lesson status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса занятия
type UpdateStatusRequest struct {
	Status string `json:"status"`
	UserID *int64 `json:"-"` // Кто меняет статус, из заголовка X-User-ID
}

// GetStudentLessonsRequest запрос на получение занятий ученика
type GetStudentLessonsRequest struct {
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"`
}

// GetSchoolLessonsRequest запрос на получение занятий школы
type GetSchoolLessonsRequest struct {
	SchoolID         int64      `json:"schoolId"`
	OfficeID         *int64     `json:"officeId,omitempty"`         // Фильтр по офису (опционально)
	InstructorID     *int64     `json:"instructorId,omitempty"`     // Фильтр по инструктору (опционально)
	Date             *time.Time `json:"date,omitempty"`             // Конкретная дата (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые занятия
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSchoolLessonsRequest) ToDomainFilter() (domain.LessonsFilter, error) {
	filter := domain.LessonsFilter{
		SchoolID:         r.SchoolID,
		OfficeID:         r.OfficeID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.InstructorID != nil {
		filter.InstructorIDs = []int64{*r.InstructorID}
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainLessonStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// LessonResponse ответ с данными занятия
type LessonResponse struct {
	ID           int64   `json:"id"`
	SchoolID     int64   `json:"schoolId"`
	OfficeID     *int64  `json:"officeId,omitempty"`
	InstructorID int64   `json:"resourceId"`
	StudentID    *int64  `json:"subjectId,omitempty"`
	VehicleID    *int64  `json:"vehicleId,omitempty"`
	Date         string  `json:"date"`  // "2025-06-10"
	Start        string  `json:"start"` // "09:00"
	End          string  `json:"end"`   // "10:00"
	Status       string  `json:"status"`
	Comment      *string `json:"comment,omitempty"`
	CreatorID    *int64  `json:"creatorId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LessonListResponse ответ со списком занятий
type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
}

// Методы конвертации

// FromDomainLesson конвертирует domain модель в DTO
func FromDomainLesson(l *domain.Lesson) *LessonResponse {
	if l == nil {
		return nil
	}

	return &LessonResponse{
		ID:           l.ID,
		SchoolID:     l.SchoolID,
		OfficeID:     l.OfficeID,
		InstructorID: l.InstructorID,
		StudentID:    l.StudentID,
		VehicleID:    l.VehicleID,
		Date:         l.LessonDate.Format(domain.DateFormat),
		Start:        l.StartTime.String(),
		End:          l.EndTime.String(),
		Status:       string(l.Status),
		Comment:      l.Comment,
		CreatorID:    l.CreatorID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// FromDomainLessonList конвертирует список domain моделей в DTO
func FromDomainLessonList(lessons []*domain.Lesson) *LessonListResponse {
	resp := &LessonListResponse{
		Lessons: make([]LessonResponse, 0, len(lessons)),
	}

	for _, lesson := range lessons {
		if lessonResp := FromDomainLesson(lesson); lessonResp != nil {
			resp.Lessons = append(resp.Lessons, *lessonResp)
		}
	}

	return resp
}

// ToDomainLessonStatus конвертирует строку в domain.LessonStatus с валидацией
func ToDomainLessonStatus(status string) (domain.LessonStatus, error) {
	s, ok := domain.ParseLessonStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
