package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

type fakeRepo struct {
	configs   []*domain.ScheduleConfig
	nextID    int64
	err       error
	createErr error
}

func sameOffice(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r *fakeRepo) Create(_ context.Context, c *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	r.configs = append(r.configs, c)
	return c, nil
}

func (r *fakeRepo) GetBySchoolAndOffice(_ context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.configs {
		if c.SchoolID == schoolID && sameOffice(c.OfficeID, officeID) {
			return c, nil
		}
	}
	return nil, configRepo.ErrConfigNotFound
}

func (r *fakeRepo) GetConfigWithHierarchy(ctx context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error) {
	if officeID != nil {
		if c, err := r.GetBySchoolAndOffice(ctx, schoolID, officeID); err == nil {
			return c, nil
		}
	}
	return r.GetBySchoolAndOffice(ctx, schoolID, nil)
}

func (r *fakeRepo) GetAllBySchool(_ context.Context, schoolID int64) ([]*domain.ScheduleConfig, error) {
	result := make([]*domain.ScheduleConfig, 0)
	for _, c := range r.configs {
		if c.SchoolID == schoolID {
			result = append(result, c)
		}
	}
	return result, r.err
}

func (r *fakeRepo) Update(_ context.Context, id int64, c *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	for i, existing := range r.configs {
		if existing.ID == id {
			c.ID = id
			r.configs[i] = c
			return c, nil
		}
	}
	return nil, configRepo.ErrConfigNotFound
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	for i, c := range r.configs {
		if c.ID == id {
			r.configs = append(r.configs[:i], r.configs[i+1:]...)
			return nil
		}
	}
	return configRepo.ErrConfigNotFound
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	return NewService(repo, passthroughTx{}, logger.NewNop()), repo
}

func TestGetWithHierarchy(t *testing.T) {
	svc, _ := newService()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		resp, err := svc.GetWithHierarchy(context.Background(), 1, nil)
		require.NoError(t, err)
		assert.Equal(t, models.LevelDefault, resp.Level)
		assert.Equal(t, "07:00", resp.OpenTime)
		assert.Equal(t, "20:00", resp.CloseTime)
		assert.Equal(t, []int{30, 45, 60, 90, 120}, resp.Durations)
		assert.Nil(t, resp.CreatedAt)
	})

	_, _, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1, OpenTime: "08:00"})
	require.NoError(t, err)
	_, _, err = svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1, OfficeID: ptr.Ptr(int64(3)), OpenTime: "09:00"})
	require.NoError(t, err)

	t.Run("office overrides school", func(t *testing.T) {
		resp, err := svc.GetWithHierarchy(context.Background(), 1, ptr.Ptr(int64(3)))
		require.NoError(t, err)
		assert.Equal(t, models.LevelOffice, resp.Level)
		assert.Equal(t, "09:00", resp.OpenTime)
	})

	t.Run("unknown office falls back to school", func(t *testing.T) {
		resp, err := svc.GetWithHierarchy(context.Background(), 1, ptr.Ptr(int64(4)))
		require.NoError(t, err)
		assert.Equal(t, models.LevelSchool, resp.Level)
		assert.Equal(t, "08:00", resp.OpenTime)
	})

	t.Run("invalid school", func(t *testing.T) {
		_, err := svc.GetWithHierarchy(context.Background(), 0, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpsert(t *testing.T) {
	t.Run("create then replace", func(t *testing.T) {
		svc, repo := newService()

		resp, created, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1, GranularityMinutes: 15})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 15, resp.GranularityMinutes)

		resp, created, err = svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1, Durations: []int{45, 90}, ReferenceDuration: 90})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 30, resp.GranularityMinutes)
		assert.Equal(t, []int{45, 90}, resp.Durations)
		assert.Len(t, repo.configs, 1)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []*models.UpsertConfigRequest{
			{SchoolID: 0},
			{SchoolID: 1, OpenTime: "20:00", CloseTime: "07:00"},
			{SchoolID: 1, OpenTime: "7am"},
			{SchoolID: 1, GranularityMinutes: 1},
			{SchoolID: 1, GranularityMinutes: 121},
			{SchoolID: 1, Durations: []int{10}},
			{SchoolID: 1, ReferenceDuration: 600},
			{SchoolID: 1, Durations: []int{15, 30, 45, 60, 75, 90, 105, 120, 135, 150, 165}},
			{SchoolID: 1, OfficeID: ptr.Ptr(int64(-2))},
		}
		for _, req := range cases {
			svc, repo := newService()
			_, _, err := svc.Upsert(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
			assert.Empty(t, repo.configs)
		}
	})

	t.Run("concurrent create", func(t *testing.T) {
		svc, repo := newService()
		repo.createErr = configRepo.ErrDuplicateConfig

		_, _, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1})
		assert.ErrorIs(t, err, ErrConfigAlreadyExists)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo := newService()
		repo.err = errors.New("db down")

		_, _, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestDelete(t *testing.T) {
	svc, repo := newService()
	_, _, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{SchoolID: 1, OfficeID: ptr.Ptr(int64(3))})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, nil), ErrConfigNotFound)
	require.NoError(t, svc.Delete(context.Background(), 1, ptr.Ptr(int64(3))))
	assert.Empty(t, repo.configs)

	list, err := svc.GetAllBySchool(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list.Configs)
}
