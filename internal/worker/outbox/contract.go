package outbox

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// EventRepository интерфейс outbox-таблицы
type EventRepository interface {
	ClaimPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
	MarkAttemptFailed(ctx context.Context, id int64, reason string, maxAttempts int) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Dispatcher интерфейс доставки уведомления
type Dispatcher interface {
	Dispatch(ctx context.Context, eventID string, n domain.Notification) error
}

// Metrics интерфейс метрик доставки
type Metrics interface {
	IncOutboxDispatch(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
