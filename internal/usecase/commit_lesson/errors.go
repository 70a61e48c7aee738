package commit_lesson

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("commit_lesson: invalid input data")

	// ErrInstructorNotFound возвращается, когда инструктор не найден в школе
	ErrInstructorNotFound = errors.New("commit_lesson: instructor not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с занятием инструктора
	ErrSlotNotAvailable = errors.New("commit_lesson: slot is not available")

	// ErrDuplicateRequest возвращается, когда запрос с тем же ключом идемпотентности ещё выполняется
	ErrDuplicateRequest = errors.New("commit_lesson: request with this idempotency key is in progress")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_lesson: internal error")
)
