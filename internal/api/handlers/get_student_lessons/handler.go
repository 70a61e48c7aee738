package get_student_lessons

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
)

const (
	msgInvalidStudentID    = "некорректный ID ученика"
	msgInvalidLessonStatus = "некорректный статус занятия"
)

type Handler struct {
	service StudentLessonsService
	logger  Logger
}

func NewHandler(service StudentLessonsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/lessons?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, err := handlers.PathInt64(r, "studentId")
	if err != nil {
		h.logger.Warn("GET /students/{id}/lessons - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	result, err := h.service.GetStudentLessons(r.Context(), &models.GetStudentLessonsRequest{
		StudentID: studentID,
		Status:    handlers.QueryString(r, "status"),
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidStatus), errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/lessons - Invalid status: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidLessonStatus)

		default:
			h.logger.Error("GET /students/{id}/lessons - Failed to get lessons: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/lessons - Lessons retrieved: student_id=%d, count=%d", studentID, len(result.Lessons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
