package idempotency

import "errors"

var (
	// ErrInProgress запрос с тем же ключом ещё выполняется
	ErrInProgress = errors.New("idempotency: request with this key is in progress")

	// ErrStore ошибка обращения к Redis
	ErrStore = errors.New("idempotency: store error")
)
