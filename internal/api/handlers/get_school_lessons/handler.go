package get_school_lessons

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
)

const (
	msgInvalidSchoolID     = "некорректный ID школы"
	msgInvalidQueryParams  = "некорректные параметры фильтра"
	msgInvalidLessonStatus = "некорректный статус занятия"
)

type Handler struct {
	service SchoolLessonsService
	logger  Logger
}

func NewHandler(service SchoolLessonsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schools/{schoolId}/lessons
// Query params: date, officeId, instructorId, status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.PathInt64(r, "schoolId")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/lessons - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	req, err := parseFilter(r, schoolID)
	if err != nil {
		h.logger.Warn("GET /schools/{id}/lessons - Invalid query params: school_id=%d, error=%v", schoolID, err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.service.GetSchoolLessons(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("GET /schools/{id}/lessons - Invalid filter: school_id=%d, error=%v", schoolID, err)
			handlers.RespondBadRequest(w, msgInvalidLessonStatus)

		default:
			h.logger.Error("GET /schools/{id}/lessons - Failed to get lessons: school_id=%d, error=%v", schoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schools/{id}/lessons - Lessons retrieved: school_id=%d, count=%d", schoolID, len(result.Lessons))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFilter(r *http.Request, schoolID int64) (*models.GetSchoolLessonsRequest, error) {
	officeID, err := handlers.QueryInt64(r, "officeId")
	if err != nil {
		return nil, err
	}
	instructorID, err := handlers.QueryInt64(r, "instructorId")
	if err != nil {
		return nil, err
	}
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	includeCancelled, err := handlers.QueryBool(r, "includeCancelled")
	if err != nil {
		return nil, err
	}

	return &models.GetSchoolLessonsRequest{
		SchoolID:         schoolID,
		OfficeID:         officeID,
		InstructorID:     instructorID,
		Date:             date,
		Status:           handlers.QueryString(r, "status"),
		IncludeCancelled: includeCancelled,
	}, nil
}
