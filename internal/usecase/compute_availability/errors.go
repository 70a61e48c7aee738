package compute_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_availability: invalid input data")

	// ErrInternal возвращается при ошибке чтения инструкторов, занятий или конфигурации
	ErrInternal = errors.New("compute_availability: internal error")
)
