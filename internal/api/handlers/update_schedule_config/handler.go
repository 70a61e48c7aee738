package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/config"
	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
)

const (
	msgInvalidSchoolID = "некорректный ID школы"
	msgInvalidRequest  = "некорректное тело запроса"
	msgInvalidConfig   = "некорректные параметры расписания"
	msgConfigConflict  = "конфигурация уже создаётся параллельным запросом"
)

type Handler struct {
	service ConfigUpserter
	logger  Logger
}

func NewHandler(service ConfigUpserter, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/schools/{schoolId}/schedule-config
// Создаёт (201) или заменяет (200) конфигурацию школы или офиса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schoolID, err := handlers.PathInt64(r, "schoolId")
	if err != nil {
		h.logger.Warn("PUT /schools/{id}/schedule-config - Invalid school ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schools/{id}/schedule-config - Invalid request body: school_id=%d, error=%v", schoolID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	req.SchoolID = schoolID

	cfg, created, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /schools/{id}/schedule-config - Invalid config: school_id=%d, error=%v", schoolID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, config.ErrConfigAlreadyExists):
			h.logger.Warn("PUT /schools/{id}/schedule-config - Concurrent create: school_id=%d", schoolID)
			handlers.RespondConflict(w, msgConfigConflict)

		default:
			h.logger.Error("PUT /schools/{id}/schedule-config - Failed to save config: school_id=%d, error=%v", schoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("PUT /schools/{id}/schedule-config - Config saved: school_id=%d, config_id=%d, created=%t",
		schoolID, cfg.ID, created)
	handlers.RespondJSON(w, status, cfg)
}
