package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/integrations/notifier"
)

const (
	defaultInterval    = 5 * time.Second
	defaultTimeout     = 10 * time.Second
	defaultBatchSize   = 50
	defaultMaxAttempts = 5

	resultSent   = "sent"
	resultRetry  = "retry"
	resultFailed = "failed"
)

// Options параметры релея
type Options struct {
	Interval    time.Duration
	Timeout     time.Duration
	BatchSize   int
	MaxAttempts int
}

// Relay фоновая задача доставки уведомлений из outbox.
// Ошибки доставки только логируются и не влияют на созданные занятия
type Relay struct {
	repo       EventRepository
	txManager  TxManager
	dispatcher Dispatcher
	metrics    Metrics
	logger     Logger
	opts       Options
}

// NewRelay создает релей, незаданные параметры заменяются значениями по умолчанию
func NewRelay(repo EventRepository, txManager TxManager, dispatcher Dispatcher, metrics Metrics, logger Logger, opts Options) *Relay {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}

	return &Relay{
		repo:       repo,
		txManager:  txManager,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		opts:       opts,
	}
}

// Start запускает релей в отдельной горутине до отмены ctx.
// Возвращаемый канал закрывается после остановки
func (r *Relay) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(r.opts.Interval)

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
				sent, err := r.RunOnce(tickCtx)
				cancel()
				if err != nil {
					r.logger.Error("Outbox relay error: %v", err)
					continue
				}
				if sent > 0 {
					r.logger.Info("Outbox relay delivered %d notifications", sent)
				}
			}
		}
	}()

	return done
}

// RunOnce обрабатывает одну пачку событий и возвращает число доставленных
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	sent := 0

	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Забираем пачку ожидающих событий
		events, err := r.repo.ClaimPending(ctx, r.opts.BatchSize)
		if err != nil {
			return fmt.Errorf("claim pending: %w", err)
		}

		for _, event := range events {
			// 2. Доставляем событие
			dispatchErr := r.dispatcher.Dispatch(ctx, event.EventID, event.Notification)
			if dispatchErr == nil {
				if err := r.repo.MarkSent(ctx, event.ID); err != nil {
					return fmt.Errorf("mark sent %s: %w", event.EventID, err)
				}
				r.metrics.IncOutboxDispatch(resultSent)
				sent++
				continue
			}

			// 3. Отклонённое сообщение не повторяем
			maxAttempts := r.opts.MaxAttempts
			if errors.Is(dispatchErr, notifier.ErrRejected) {
				maxAttempts = 1
			}

			if err := r.repo.MarkAttemptFailed(ctx, event.ID, dispatchErr.Error(), maxAttempts); err != nil {
				return fmt.Errorf("mark attempt failed %s: %w", event.EventID, err)
			}

			if event.Attempts+1 >= maxAttempts {
				r.metrics.IncOutboxDispatch(resultFailed)
				r.logger.Error("Notification %s for lesson %d dropped after %d attempts: %v",
					event.EventID, event.LessonID, event.Attempts+1, dispatchErr)
			} else {
				r.metrics.IncOutboxDispatch(resultRetry)
				r.logger.Warn("Notification %s for lesson %d failed (attempt %d): %v",
					event.EventID, event.LessonID, event.Attempts+1, dispatchErr)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return sent, nil
}
