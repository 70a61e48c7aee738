package lessons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	lessonRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/lesson"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

type fakeRepo struct {
	lessons   map[int64]*domain.Lesson
	filter    domain.LessonsFilter
	filterErr error
	updated   []domain.LessonStatus
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Lesson, error) {
	l, ok := r.lessons[id]
	if !ok {
		return nil, lessonRepo.ErrLessonNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Lesson, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRepo) GetByFilter(_ context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error) {
	r.filter = filter
	if r.filterErr != nil {
		return nil, r.filterErr
	}
	result := make([]*domain.Lesson, 0, len(r.lessons))
	for _, l := range r.lessons {
		result = append(result, l)
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.LessonStatus) error {
	l, ok := r.lessons[id]
	if !ok {
		return lessonRepo.ErrLessonNotFound
	}
	l.Status = status
	r.updated = append(r.updated, status)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{lessons: map[int64]*domain.Lesson{
		1: {
			ID: 1, SchoolID: 1, InstructorID: 10, StudentID: ptr.Ptr(int64(77)),
			LessonDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime:  "09:00", EndTime: "10:00", Status: domain.StatusPlanned,
		},
	}}
	return NewService(repo, passthroughTx{}, logger.NewNop()), repo
}

func TestGetByID(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "09:00", resp.Start)
	assert.Equal(t, int64(77), *resp.StudentID)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestGetSchoolLessons(t *testing.T) {
	svc, repo := newService()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetSchoolLessons(context.Background(), &models.GetSchoolLessonsRequest{
		SchoolID:     1,
		InstructorID: ptr.Ptr(int64(10)),
		Date:         &date,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Lessons, 1)
	assert.Equal(t, []int64{10}, repo.filter.InstructorIDs)
	assert.Equal(t, int64(1), repo.filter.SchoolID)

	_, err = svc.GetSchoolLessons(context.Background(), &models.GetSchoolLessonsRequest{SchoolID: 1, Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetSchoolLessons(context.Background(), &models.GetSchoolLessonsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.filterErr = errors.New("db down")
	_, err = svc.GetSchoolLessons(context.Background(), &models.GetSchoolLessonsRequest{SchoolID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetStudentLessons(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{
		StudentID: 77,
		Status:    ptr.Ptr("planned"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Lessons, 1)
	assert.Equal(t, int64(0), repo.filter.SchoolID)
	assert.Equal(t, domain.StatusPlanned, *repo.filter.Status)

	_, err = svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{StudentID: 77, Status: ptr.Ptr("no_show")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("planned to cancelled", func(t *testing.T) {
		svc, repo := newService()

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, []domain.LessonStatus{domain.StatusCancelled}, repo.updated)
	})

	t.Run("cancelled is final", func(t *testing.T) {
		svc, repo := newService()
		repo.lessons[1].Status = domain.StatusCancelled

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, repo.updated)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "lost"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing lesson", func(t *testing.T) {
		svc, _ := newService()
		_, err := svc.UpdateStatus(context.Background(), 9, &models.UpdateStatusRequest{Status: "completed"})
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})
}
