package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestInsert_BatchesEvents(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO notification_outbox \(event_id,lesson_id,payload,status\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\)`).
		WithArgs("e-1", int64(5), sqlmock.AnyArg(), "pending", "e-2", int64(5), sqlmock.AnyArg(), "pending").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.Insert(context.Background(), []*domain.OutboxEvent{
		{EventID: "e-1", LessonID: 5, Notification: domain.Notification{Type: domain.NotificationLessonAssigned, RecipientID: 10}},
		{EventID: "e-2", LessonID: 5, Notification: domain.Notification{Type: domain.NotificationLessonConfirmed, RecipientID: 77}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_NothingToDo(t *testing.T) {
	repo, mock := newRepo(t)

	require.NoError(t, repo.Insert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimPending_DecodesPayload(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM notification_outbox WHERE status = \$1 ORDER BY created_at ASC, id ASC LIMIT 10 FOR UPDATE SKIP LOCKED`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "lesson_id", "payload", "status", "attempts", "last_error"}).
			AddRow(int64(1), "e-1", int64(5), []byte(`{"type":"lesson_assigned","message":"m","recipientId":10,"schoolId":1,"priority":"high"}`), "pending", 0, nil))

	events, err := repo.ClaimPending(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationLessonAssigned, events[0].Notification.Type)
	assert.Equal(t, domain.PriorityHigh, events[0].Notification.Priority)
	assert.Equal(t, int64(10), events[0].Notification.RecipientID)
	assert.Nil(t, events[0].LastError)
}

func TestClaimPending_BadPayload(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM notification_outbox`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "lesson_id", "payload", "status", "attempts", "last_error"}).
			AddRow(int64(1), "e-1", int64(5), []byte(`not json`), "pending", 0, nil).
			AddRow(int64(2), "e-2", int64(5), []byte(`{"type":"lesson_confirmed","recipientId":77}`), "pending", 0, nil))
	mock.ExpectExec(`UPDATE notification_outbox SET status = \$1, last_error = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs("failed", sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	events, err := repo.ClaimPending(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e-2", events[0].EventID)
	assert.Equal(t, domain.NotificationLessonConfirmed, events[0].Notification.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimPending_BadPayloadMarkFails(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM notification_outbox`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "lesson_id", "payload", "status", "attempts", "last_error"}).
			AddRow(int64(1), "e-1", int64(5), []byte(`not json`), "pending", 0, nil))
	mock.ExpectExec(`UPDATE notification_outbox SET status`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ClaimPending(context.Background(), 10)

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestMarkAttemptFailed(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE notification_outbox SET attempts = attempts \+ 1, last_error = \$1, status = CASE WHEN attempts \+ 1 >= \$2 THEN \$3 ELSE status END`).
		WithArgs("timeout", 5, "failed", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkAttemptFailed(context.Background(), 1, "timeout", 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSent_Missing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE notification_outbox SET status = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkSent(context.Background(), 1), ErrEventNotFound)
}
