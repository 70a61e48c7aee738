package update_lesson_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
)

const (
	msgInvalidLessonID     = "некорректный ID занятия"
	msgInvalidRequest      = "некорректное тело запроса"
	msgInvalidLessonStatus = "некорректный статус занятия"
	msgLessonNotFound      = "занятие не найдено"
	msgInvalidTransition   = "переход в этот статус невозможен"
)

type Handler struct {
	service LessonStatusUpdater
	logger  Logger
}

func NewHandler(service LessonStatusUpdater, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/lessons/{lessonId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lessonID, err := handlers.PathInt64(r, "lessonId")
	if err != nil {
		h.logger.Warn("PATCH /lessons/{id}/status - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	// Декодируем body
	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /lessons/{id}/status - Invalid request body: lesson_id=%d, error=%v", lessonID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		req.UserID = &userID
	}

	lesson, err := h.service.UpdateStatus(r.Context(), lessonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("PATCH /lessons/{id}/status - Invalid status: lesson_id=%d, status=%s", lessonID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidLessonStatus)

		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("PATCH /lessons/{id}/status - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgLessonNotFound)

		case errors.Is(err, lessons.ErrInvalidTransition):
			h.logger.Warn("PATCH /lessons/{id}/status - Transition not allowed: lesson_id=%d, status=%s", lessonID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /lessons/{id}/status - Failed to update status: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /lessons/{id}/status - Status updated: lesson_id=%d, status=%s", lessonID, lesson.Status)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
