package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса уведомлений
	ErrInvalidResponse = errors.New("notifier: invalid response")

	// ErrRejected возвращается, когда сервис уведомлений отклонил сообщение (4xx).
	// Повтор не поможет
	ErrRejected = errors.New("notifier: notification rejected")

	// ErrUnknownDriver возвращается при неизвестном драйвере в конфигурации
	ErrUnknownDriver = errors.New("notifier: unknown driver")
)
