package notifier

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// Dispatcher доставляет одно уведомление получателю
type Dispatcher interface {
	Dispatch(ctx context.Context, eventID string, n domain.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
