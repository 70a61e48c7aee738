package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

const table = "notification_outbox"

type brokenEvent struct {
	id     int64
	reason string
}

// Repository репозиторий outbox-таблицы уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет события одним запросом.
// Вызывается в транзакции создания занятия, чтобы уведомления фиксировались вместе с ним
func (r *Repository) Insert(ctx context.Context, events []*domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("event_id", "lesson_id", "payload", "status")

	for _, e := range events {
		payload, err := json.Marshal(e.Notification)
		if err != nil {
			return fmt.Errorf("%w: Insert - marshal notification: %v", ErrPayload, err)
		}
		insertBuilder = insertBuilder.Values(e.EventID, e.LessonID, payload, domain.OutboxPending)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ClaimPending выбирает до limit ожидающих событий с блокировкой FOR UPDATE SKIP LOCKED.
// Несколько экземпляров релея не получат одно и то же событие.
// Событие с нечитаемым payload сразу переводится в failed и в результат не попадает
func (r *Repository) ClaimPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_id", "lesson_id", "payload", "status", "attempts", "last_error").
		From(table).
		Where(squirrel.Eq{"status": domain.OutboxPending}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0, limit)
	var broken []brokenEvent
	for rows.Next() {
		var e domain.OutboxEvent
		var payload []byte

		if err := rows.Scan(&e.ID, &e.EventID, &e.LessonID, &payload, &e.Status, &e.Attempts, &e.LastError); err != nil {
			return nil, fmt.Errorf("%w: ClaimPending - scan row: %v", ErrScanRow, err)
		}
		if err := json.Unmarshal(payload, &e.Notification); err != nil {
			broken = append(broken, brokenEvent{id: e.ID, reason: fmt.Sprintf("%v: %v", ErrPayload, err)})
			continue
		}

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ClaimPending - rows error: %v", ErrScanRow, err)
	}
	// Курсор закрываем до UPDATE: в транзакции одно соединение
	rows.Close()

	for _, b := range broken {
		if err := r.markPayloadFailed(ctx, executor, b.id, b.reason); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// markPayloadFailed переводит событие с битым payload в failed без повторных попыток
func (r *Repository) markPayloadFailed(ctx context.Context, executor DBExecutor, id int64, reason string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.OutboxFailed).
		Set("last_error", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClaimPending - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "ClaimPending", query, args)
}

// MarkSent помечает событие доставленным
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.OutboxSent).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("sent_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "MarkSent", query, args)
}

// MarkAttemptFailed увеличивает счётчик попыток и сохраняет ошибку.
// После maxAttempts попыток событие переходит в failed и больше не выбирается
func (r *Repository) MarkAttemptFailed(ctx context.Context, id int64, reason string, maxAttempts int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", reason).
		Set("status", squirrel.Expr("CASE WHEN attempts + 1 >= ? THEN ? ELSE status END", maxAttempts, domain.OutboxFailed)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, executor, "MarkAttemptFailed", query, args)
}

func (r *Repository) execSingle(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
