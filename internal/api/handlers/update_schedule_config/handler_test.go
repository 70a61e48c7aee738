package update_schedule_config

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

	"github.com/m04kA/DS-SchedulingService/internal/service/config"
	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeService struct {
	got     *models.UpsertConfigRequest
	created bool
	err     error
}

func (f *fakeService) Upsert(_ context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, bool, error) {
	f.got = req
	if f.err != nil {
		return nil, false, f.err
	}
	return &models.ConfigResponse{ID: 1, SchoolID: req.SchoolID, Level: models.LevelSchool}, f.created, nil
}

func serve(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/schools/{schoolId}/schedule-config", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
	return rec
}

func TestHandle_CreatedAndReplaced(t *testing.T) {
	svc := &fakeService{created: true}
	rec := serve(svc, "/api/v1/schools/3/schedule-config", `{"officeId":7,"openTime":"08:00","granularityMinutes":15}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), svc.got.SchoolID)
	assert.Equal(t, int64(7), *svc.got.OfficeID)
	assert.Equal(t, "08:00", svc.got.OpenTime)
	assert.Equal(t, 15, svc.got.GranularityMinutes)

	svc.created = false
	rec = serve(svc, "/api/v1/schools/3/schedule-config", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_SchoolIDFromPathOnly(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/schools/3/schedule-config", `{"schoolId":9}`)

	// schoolId не принимается из тела
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: granularity", config.ErrInvalidInput), http.StatusBadRequest},
		{config.ErrConfigAlreadyExists, http.StatusConflict},
		{config.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := serve(&fakeService{err: tc.err}, "/api/v1/schools/3/schedule-config", `{}`)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/schools/zero/schedule-config", `{}`).Code)
}
