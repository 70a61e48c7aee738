package delete_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/config"
)

const (
	msgInvalidSchoolID = "некорректный ID школы"
	msgInvalidOfficeID = "некорректный ID офиса"
	msgConfigNotFound  = "конфигурация не найдена"
)

type Handler struct {
	service ConfigDeleter
	logger  Logger
}

func NewHandler(service ConfigDeleter, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schools/{schoolId}/schedule-config?officeId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.PathInt64(r, "schoolId")
	if err != nil {
		h.logger.Warn("DELETE /schools/{id}/schedule-config - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	officeID, err := handlers.QueryInt64(r, "officeId")
	if err != nil {
		h.logger.Warn("DELETE /schools/{id}/schedule-config - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	if err := h.service.Delete(r.Context(), schoolID, officeID); err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSchoolID)

		case errors.Is(err, config.ErrConfigNotFound):
			h.logger.Warn("DELETE /schools/{id}/schedule-config - Config not found: school_id=%d", schoolID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("DELETE /schools/{id}/schedule-config - Failed to delete config: school_id=%d, error=%v", schoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schools/{id}/schedule-config - Config deleted: school_id=%d", schoolID)
	w.WriteHeader(http.StatusNoContent)
}
