package get_student_lessons

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeService struct {
	got *models.GetStudentLessonsRequest
	err error
}

func (f *fakeService) GetStudentLessons(_ context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LessonListResponse{Lessons: []models.LessonResponse{{ID: 1}, {ID: 2}}}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/students/{studentId}/lessons", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/students/5/lessons?status=completed")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.got.StudentID)
	assert.Equal(t, "completed", *svc.got.Status)
	assert.Contains(t, rec.Body.String(), `"id":2`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/students/0/lessons").Code)

	rec := serve(&fakeService{err: fmt.Errorf("%w: invalid status", lessons.ErrInvalidInput)}, "/api/v1/students/5/lessons?status=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{err: lessons.ErrInternal}, "/api/v1/students/5/lessons")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
