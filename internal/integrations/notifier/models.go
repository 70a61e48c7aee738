package notifier

import "github.com/m04kA/DS-SchedulingService/internal/domain"

// Message сообщение в формате сервиса уведомлений
type Message struct {
	EventID string `json:"eventId"`
	domain.Notification
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
