package get_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons"
)

const (
	msgInvalidLessonID = "некорректный ID занятия"
	msgLessonNotFound  = "занятие не найдено"
)

type Handler struct {
	service LessonGetter
	logger  Logger
}

func NewHandler(service LessonGetter, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lessons/{lessonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lessonID, err := handlers.PathInt64(r, "lessonId")
	if err != nil {
		h.logger.Warn("GET /lessons/{id} - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	lesson, err := h.service.GetByID(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, lessons.ErrLessonNotFound) {
			h.logger.Warn("GET /lessons/{id} - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgLessonNotFound)
			return
		}
		h.logger.Error("GET /lessons/{id} - Failed to get lesson: lesson_id=%d, error=%v", lessonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /lessons/{id} - Lesson retrieved: lesson_id=%d", lessonID)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
