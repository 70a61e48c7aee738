package delete_schedule_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/DS-SchedulingService/internal/service/config"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeService struct {
	gotOffice *int64
	err       error
}

func (f *fakeService) Delete(_ context.Context, _ int64, officeID *int64) error {
	f.gotOffice = officeID
	return f.err
}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/schools/{schoolId}/schedule-config", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/schools/1/schedule-config?officeId=4")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(4), *svc.gotOffice)

	svc = &fakeService{}
	assert.Equal(t, http.StatusNoContent, serve(svc, "/api/v1/schools/1/schedule-config").Code)
	assert.Nil(t, svc.gotOffice)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/schools/1/schedule-config?officeId=0").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: config.ErrConfigNotFound}, "/api/v1/schools/1/schedule-config").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: config.ErrInternal}, "/api/v1/schools/1/schedule-config").Code)
}
