package lesson

import "errors"

var (
	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = errors.New("lesson.repository: lesson not found")

	// ErrOverlap возвращается, когда вставка нарушает ограничение непересечения занятий инструктора
	ErrOverlap = errors.New("lesson.repository: lesson overlaps an existing one")

	// ErrReferenceNotFound возвращается, когда инструктор из занятия не существует
	ErrReferenceNotFound = errors.New("lesson.repository: referenced instructor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("lesson.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lesson.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("lesson.repository: failed to scan row")
)
