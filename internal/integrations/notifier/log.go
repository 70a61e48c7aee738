package notifier

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// LogDispatcher только пишет уведомления в лог (локальная разработка)
type LogDispatcher struct {
	log Logger
}

// NewLogDispatcher создает диспетчер, пишущий в лог
func NewLogDispatcher(log Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Dispatch(_ context.Context, eventID string, n domain.Notification) error {
	d.log.Info("Notification %s [%s/%s] to %d: %s", eventID, n.Type, n.Priority, n.RecipientID, n.Message)
	return nil
}
