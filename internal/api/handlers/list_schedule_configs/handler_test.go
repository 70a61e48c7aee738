package list_schedule_configs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/DS-SchedulingService/internal/service/config"
	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f fakeService) GetAllBySchool(_ context.Context, _ int64) (*models.ConfigListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConfigListResponse{Configs: []models.ConfigResponse{}}, nil
}

func TestHandle(t *testing.T) {
	serve := func(svc fakeService, target string) *httptest.ResponseRecorder {
		r := mux.NewRouter()
		r.HandleFunc("/api/v1/schools/{schoolId}/schedule-configs", NewHandler(svc, logger.NewNop()).Handle)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := serve(fakeService{}, "/api/v1/schools/1/schedule-configs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configs":[]}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(fakeService{}, "/api/v1/schools/-1/schedule-configs").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(fakeService{err: config.ErrInternal}, "/api/v1/schools/1/schedule-configs").Code)
}
