package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeRepo struct {
	mu       sync.Mutex
	events   []*domain.OutboxEvent
	claimErr error
}

func (f *fakeRepo) ClaimPending(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	out := make([]*domain.OutboxEvent, 0, limit)
	for _, e := range f.events {
		if e.Status == domain.OutboxPending && len(out) < limit {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkSent(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := f.find(id)
	e.Status = domain.OutboxSent
	e.Attempts++
	return nil
}

func (f *fakeRepo) MarkAttemptFailed(_ context.Context, id int64, reason string, maxAttempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := f.find(id)
	e.Attempts++
	e.LastError = &reason
	if e.Attempts >= maxAttempts {
		e.Status = domain.OutboxFailed
	}
	return nil
}

func (f *fakeRepo) find(id int64) *domain.OutboxEvent {
	for _, e := range f.events {
		if e.ID == id {
			return e
		}
	}
	panic(fmt.Sprintf("event %d not found", id))
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeDispatcher struct {
	mu     sync.Mutex
	fail   map[string]error
	called []string
}

func (d *fakeDispatcher) Dispatch(_ context.Context, eventID string, _ domain.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.called = append(d.called, eventID)
	return d.fail[eventID]
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncOutboxDispatch(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[result]++
}

func pending(id int64, eventID string) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:       id,
		EventID:  eventID,
		LessonID: 1,
		Status:   domain.OutboxPending,
		Notification: domain.Notification{
			Type:        domain.NotificationLessonAssigned,
			RecipientID: 10,
		},
	}
}

func newRelay(repo *fakeRepo, d *fakeDispatcher, m *countingMetrics, maxAttempts int) *Relay {
	return NewRelay(repo, passTx{}, d, m, logger.NewNop(), Options{MaxAttempts: maxAttempts, BatchSize: 10})
}

func TestRunOnce_FailureDoesNotBlockOthers(t *testing.T) {
	repo := &fakeRepo{events: []*domain.OutboxEvent{pending(1, "a"), pending(2, "b"), pending(3, "c")}}
	d := &fakeDispatcher{fail: map[string]error{"b": errors.New("timeout")}}
	m := &countingMetrics{counts: map[string]int{}}

	sent, err := newRelay(repo, d, m, 3).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"a", "b", "c"}, d.called)
	assert.Equal(t, domain.OutboxSent, repo.events[0].Status)
	assert.Equal(t, domain.OutboxPending, repo.events[1].Status)
	assert.Equal(t, "timeout", *repo.events[1].LastError)
	assert.Equal(t, domain.OutboxSent, repo.events[2].Status)
	assert.Equal(t, 2, m.counts[resultSent])
	assert.Equal(t, 1, m.counts[resultRetry])
}

func TestRunOnce_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &fakeRepo{events: []*domain.OutboxEvent{pending(1, "a")}}
	d := &fakeDispatcher{fail: map[string]error{"a": errors.New("timeout")}}
	m := &countingMetrics{counts: map[string]int{}}
	relay := newRelay(repo, d, m, 2)

	for i := 0; i < 3; i++ {
		_, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
	}

	assert.Len(t, d.called, 2)
	assert.Equal(t, domain.OutboxFailed, repo.events[0].Status)
	assert.Equal(t, 1, m.counts[resultFailed])
}

func TestRunOnce_RejectedIsNotRetried(t *testing.T) {
	repo := &fakeRepo{events: []*domain.OutboxEvent{pending(1, "a")}}
	d := &fakeDispatcher{fail: map[string]error{"a": fmt.Errorf("%w: status 400", notifier.ErrRejected)}}
	m := &countingMetrics{counts: map[string]int{}}

	_, err := newRelay(repo, d, m, 5).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OutboxFailed, repo.events[0].Status)
	assert.Equal(t, 1, m.counts[resultFailed])
}

func TestRunOnce_ClaimError(t *testing.T) {
	repo := &fakeRepo{claimErr: errors.New("db down")}
	m := &countingMetrics{counts: map[string]int{}}

	_, err := newRelay(repo, &fakeDispatcher{}, m, 3).RunOnce(context.Background())

	assert.Error(t, err)
}

func TestStart_StopsOnCancel(t *testing.T) {
	repo := &fakeRepo{events: []*domain.OutboxEvent{pending(1, "a")}}
	d := &fakeDispatcher{}
	m := &countingMetrics{counts: map[string]int{}}
	relay := NewRelay(repo, passTx{}, d, m, logger.NewNop(), Options{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := relay.Start(ctx)

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.events[0].Status == domain.OutboxSent
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
