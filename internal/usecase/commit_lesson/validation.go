package commit_lesson

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Интервал проверяется первым: end <= start отклоняется независимо от остальных полей
func validateRequest(req *Request) error {
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: endTime %s must be after startTime %s", ErrInvalidInput, req.EndTime, req.StartTime)
	}

	if req.SchoolID <= 0 {
		return fmt.Errorf("%w: schoolID must be positive", ErrInvalidInput)
	}

	if req.InstructorID <= 0 {
		return fmt.Errorf("%w: instructorID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Необязательные ID проверяются в фиксированном порядке
	optional := []struct {
		name string
		id   *int64
	}{
		{name: "officeID", id: req.OfficeID},
		{name: "studentID", id: req.StudentID},
		{name: "vehicleID", id: req.VehicleID},
		{name: "creatorID", id: req.CreatorID},
	}
	for _, field := range optional {
		if field.id != nil && *field.id <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, field.name)
		}
	}

	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	if req.IdempotencyKey != "" {
		if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
			return fmt.Errorf("%w: idempotency key must be a UUID", ErrInvalidInput)
		}
	}

	return nil
}

// findOverlap возвращает первое активное занятие, пересекающееся с интервалом
func findOverlap(lessons []*domain.Lesson, candidate domain.Interval) *domain.Lesson {
	for _, l := range lessons {
		if l.IsActive() && l.Interval().Overlaps(candidate) {
			return l
		}
	}
	return nil
}
