package get_schedule_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/service/config"
	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeService struct {
	gotOffice *int64
	err       error
}

func (f *fakeService) GetWithHierarchy(_ context.Context, schoolID int64, officeID *int64) (*models.ConfigResponse, error) {
	f.gotOffice = officeID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ConfigResponse{SchoolID: schoolID, OpenTime: "07:00", CloseTime: "20:00", Level: models.LevelDefault}, nil
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/schools/{schoolId}/schedule-config", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/schools/1/schedule-config?officeId=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), *svc.gotOffice)
	assert.Contains(t, rec.Body.String(), `"level":"default"`)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/schools/1/schedule-config?officeId=a").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: config.ErrInternal}, "/api/v1/schools/1/schedule-config").Code)
}
