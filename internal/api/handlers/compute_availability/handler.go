package compute_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/domain"
	computeAvailability "github.com/m04kA/DS-SchedulingService/internal/usecase/compute_availability"
	"github.com/m04kA/DS-SchedulingService/pkg/types"
)

const (
	msgInvalidSchoolID    = "некорректный ID школы"
	msgInvalidOfficeID    = "некорректный ID офиса"
	msgMissingDate        = "не указана дата, ожидается YYYY-MM-DD"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDurations   = "некорректный список длительностей"
	msgInvalidReference   = "некорректная опорная длительность"
	msgInvalidGranularity = "некорректный шаг сетки"
	msgInvalidHours       = "некорректные рабочие часы, ожидается HH:MM"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase ComputeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ComputeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schools/{schoolId}/availability
// Query params: date (обязательный), officeId, durations, reference, granularity, from, to
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.PathInt64(r, "schoolId")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date == nil {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	officeID, err := handlers.QueryInt64(r, "officeId")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	durations, err := handlers.QueryIntList(r, "durations")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid durations: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDurations)
		return
	}

	reference, err := optionalInt(r, "reference")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid reference duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	granularity, err := optionalInt(r, "granularity")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid granularity: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGranularity)
		return
	}

	hours, err := workingHours(r)
	if err != nil {
		h.logger.Warn("GET /schools/{id}/availability - Invalid working hours: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHours)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &computeAvailability.Request{
		SchoolID:          schoolID,
		OfficeID:          officeID,
		Date:              *date,
		Durations:         durations,
		ReferenceDuration: reference,
		WorkingHours:      hours,
		Granularity:       granularity,
	})
	if err != nil {
		switch {
		case errors.Is(err, computeAvailability.ErrInvalidInput):
			h.logger.Warn("GET /schools/{id}/availability - Invalid input: school_id=%d, error=%v", schoolID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /schools/{id}/availability - Failed to compute availability: school_id=%d, error=%v",
				schoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schools/{id}/availability - Availability computed: school_id=%d, date=%s, slots=%d",
		schoolID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func optionalInt(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// workingHours читает окно from/to, оба параметра задаются вместе
func workingHours(r *http.Request) (*domain.Interval, error) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" && to == "" {
		return nil, nil
	}

	start, err := types.NewTimeStringFromString(from)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(to)
	if err != nil {
		return nil, err
	}
	return &domain.Interval{Start: start, End: end}, nil
}
