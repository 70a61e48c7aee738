package compute_availability

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SchoolID <= 0 {
		return fmt.Errorf("%w: schoolID must be positive", ErrInvalidInput)
	}

	if req.OfficeID != nil && *req.OfficeID <= 0 {
		return fmt.Errorf("%w: officeID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	for _, d := range req.Durations {
		if d <= 0 {
			return fmt.Errorf("%w: duration %d must be positive", ErrInvalidInput, d)
		}
	}

	if req.ReferenceDuration < 0 {
		return fmt.Errorf("%w: referenceDuration must not be negative", ErrInvalidInput)
	}

	if req.Granularity < 0 {
		return fmt.Errorf("%w: granularity must not be negative", ErrInvalidInput)
	}

	if req.WorkingHours != nil && !req.WorkingHours.IsValid() {
		return fmt.Errorf("%w: working hours %s-%s are invalid", ErrInvalidInput, req.WorkingHours.Start, req.WorkingHours.End)
	}

	return nil
}
