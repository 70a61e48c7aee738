package update_lesson_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeService struct {
	gotID  int64
	gotReq *models.UpdateStatusRequest
	err    error
}

func (f *fakeService) UpdateStatus(_ context.Context, lessonID int64, req *models.UpdateStatusRequest) (*models.LessonResponse, error) {
	f.gotID, f.gotReq = lessonID, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LessonResponse{ID: lessonID, Status: req.Status}, nil
}

func serve(svc *fakeService, target, body string, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.UserID)
	r.HandleFunc("/api/v1/lessons/{lessonId}/status", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/lessons/8/status", `{"status":"cancelled"}`, "4")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), svc.gotID)
	assert.Equal(t, "cancelled", svc.gotReq.Status)
	require.NotNil(t, svc.gotReq.UserID)
	assert.Equal(t, int64(4), *svc.gotReq.UserID)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		target string
		body   string
		status int
	}{
		{"bad id", nil, "/api/v1/lessons/abc/status", `{"status":"completed"}`, http.StatusBadRequest},
		{"bad body", nil, "/api/v1/lessons/8/status", `status=completed`, http.StatusBadRequest},
		{"bad status", fmt.Errorf("%w: invalid status", lessons.ErrInvalidInput), "/api/v1/lessons/8/status", `{"status":"done"}`, http.StatusBadRequest},
		{"not found", lessons.ErrLessonNotFound, "/api/v1/lessons/8/status", `{"status":"completed"}`, http.StatusNotFound},
		{"transition", lessons.ErrInvalidTransition, "/api/v1/lessons/8/status", `{"status":"planned"}`, http.StatusConflict},
		{"internal", lessons.ErrInternal, "/api/v1/lessons/8/status", `{"status":"completed"}`, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tc.err}, tc.target, tc.body, "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
