package list_schedule_configs

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/config"
)

const msgInvalidSchoolID = "некорректный ID школы"

type Handler struct {
	service ConfigLister
	logger  Logger
}

func NewHandler(service ConfigLister, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schools/{schoolId}/schedule-configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.PathInt64(r, "schoolId")
	if err != nil {
		h.logger.Warn("GET /schools/{id}/schedule-configs - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	list, err := h.service.GetAllBySchool(r.Context(), schoolID)
	if err != nil {
		if errors.Is(err, config.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidSchoolID)
			return
		}
		h.logger.Error("GET /schools/{id}/schedule-configs - Failed to list configs: school_id=%d, error=%v", schoolID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schools/{id}/schedule-configs - Configs retrieved: school_id=%d, count=%d", schoolID, len(list.Configs))
	handlers.RespondJSON(w, http.StatusOK, list)
}
