package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// DefaultQueueKey список Redis, из которого читает сервис уведомлений
const DefaultQueueKey = "notifications:lessons"

// RedisDispatcher кладёт уведомления в список Redis (RPUSH)
type RedisDispatcher struct {
	client   *redis.Client
	queueKey string
	log      Logger
}

// NewRedisDispatcher создает диспетчер поверх списка Redis
func NewRedisDispatcher(client *redis.Client, queueKey string, log Logger) *RedisDispatcher {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	return &RedisDispatcher{client: client, queueKey: queueKey, log: log}
}

// Dispatch добавляет сообщение в конец очереди
func (d *RedisDispatcher) Dispatch(ctx context.Context, eventID string, n domain.Notification) error {
	payload, err := json.Marshal(Message{EventID: eventID, Notification: n})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	if err := d.client.RPush(ctx, d.queueKey, payload).Err(); err != nil {
		return fmt.Errorf("%w: rpush %s: %v", ErrInternal, d.queueKey, err)
	}

	d.log.Info("Notification %s queued to %s: type=%s, recipient=%d", eventID, d.queueKey, n.Type, n.RecipientID)
	return nil
}
