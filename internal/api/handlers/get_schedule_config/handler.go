package get_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/config"
)

const (
	msgInvalidSchoolID = "некорректный ID школы"
	msgInvalidOfficeID = "некорректный ID офиса"
)

type Handler struct {
	service ConfigGetter
	logger  Logger
}

func NewHandler(service ConfigGetter, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schools/{schoolId}/schedule-config?officeId=
// Возвращает действующую конфигурацию: офиса, школы или встроенную по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.PathInt64(r, "schoolId")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/schedule-config - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	officeID, err := handlers.QueryInt64(r, "officeId")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/schedule-config - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	cfg, err := h.service.GetWithHierarchy(r.Context(), schoolID, officeID)
	if err != nil {
		if errors.Is(err, config.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidSchoolID)
			return
		}
		h.logger.Error("GET /schools/{id}/schedule-config - Failed to get config: school_id=%d, error=%v", schoolID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schools/{id}/schedule-config - Config retrieved: school_id=%d, level=%s", schoolID, cfg.Level)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
