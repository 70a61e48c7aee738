package compute_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	computeAvailability "github.com/m04kA/DS-SchedulingService/internal/usecase/compute_availability"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	got *computeAvailability.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *computeAvailability.Request) (*computeAvailability.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &computeAvailability.Response{
		Date:              req.Date,
		WorkingHours:      domain.Interval{Start: "09:00", End: "11:00"},
		Granularity:       30,
		Durations:         []int{30, 60},
		ReferenceDuration: 60,
		Slots: []computeAvailability.Slot{
			{
				Time:           "09:00",
				AvailableCount: 1,
				InstructorIDs:  []int64{10},
				ByDuration:     map[int][]int64{30: {10, 11}, 60: {10}},
			},
		},
		Directory: domain.InstructorDirectory{10: {Name: "Иванов"}, 11: {Name: "Петров"}},
	}, nil
}

type warnLog struct {
	warnings []string
}

func (l *warnLog) Info(string, ...interface{}) {}
func (l *warnLog) Error(string, ...interface{}) {}
func (l *warnLog) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	return serveWithLogger(uc, logger.NewNop(), target)
}

func serveWithLogger(uc *fakeUseCase, log Logger, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/schools/{schoolId}/availability", NewHandler(uc, log).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/schools/1/availability?date=2025-06-10&officeId=2&durations=30,60&reference=60&from=09:00&to=11:00")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.SchoolID)
	assert.Equal(t, int64(2), *uc.got.OfficeID)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, []int{30, 60}, uc.got.Durations)
	assert.Equal(t, 60, uc.got.ReferenceDuration)
	require.NotNil(t, uc.got.WorkingHours)
	assert.Equal(t, domain.Interval{Start: "09:00", End: "11:00"}, *uc.got.WorkingHours)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-10", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].Time)
	assert.Equal(t, 1, resp.Slots[0].AvailableResourceCount)
	assert.Equal(t, []int64{10, 11}, resp.Slots[0].AvailabilityByDuration["30min"])
	assert.Equal(t, []int64{10}, resp.Slots[0].AvailabilityByDuration["60min"])
	assert.Equal(t, "Иванов", resp.ResourceDirectory["10"].Name)
}

func TestHandle_DefaultsLeftToUseCase(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/schools/1/availability?date=2025-06-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.OfficeID)
	assert.Nil(t, uc.got.Durations)
	assert.Nil(t, uc.got.WorkingHours)
	assert.Zero(t, uc.got.Granularity)
}

func TestHandle_BadRequest(t *testing.T) {
	targets := []string{
		"/api/v1/schools/abc/availability?date=2025-06-10",
		"/api/v1/schools/0/availability?date=2025-06-10",
		"/api/v1/schools/1/availability",
		"/api/v1/schools/1/availability?date=10.06.2025",
		"/api/v1/schools/1/availability?date=2025-06-10&officeId=x",
		"/api/v1/schools/1/availability?date=2025-06-10&durations=30,abc",
		"/api/v1/schools/1/availability?date=2025-06-10&granularity=half",
		"/api/v1/schools/1/availability?date=2025-06-10&reference=abc",
		"/api/v1/schools/1/availability?date=2025-06-10&from=09:00",
	}
	for _, target := range targets {
		uc := &fakeUseCase{}
		rec := serve(uc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Nil(t, uc.got, target)
	}
}

func TestHandle_BadQueryParamsAreLoggedWithOwnMessage(t *testing.T) {
	tests := []struct {
		query   string
		message string
		warning string
	}{
		{query: "reference=abc", message: msgInvalidReference, warning: "Invalid reference duration"},
		{query: "granularity=half", message: msgInvalidGranularity, warning: "Invalid granularity"},
		{query: "durations=30,abc", message: msgInvalidDurations, warning: "Invalid durations"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			log := &warnLog{}
			rec := serveWithLogger(&fakeUseCase{}, log, "/api/v1/schools/1/availability?date=2025-06-10&"+tt.query)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
			require.Len(t, log.warnings, 1)
			assert.Contains(t, log.warnings[0], tt.warning)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	rec := serve(&fakeUseCase{err: fmt.Errorf("%w: granularity", computeAvailability.ErrInvalidInput)},
		"/api/v1/schools/1/availability?date=2025-06-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: fmt.Errorf("%w: db down", computeAvailability.ErrInternal)},
		"/api/v1/schools/1/availability?date=2025-06-10")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
