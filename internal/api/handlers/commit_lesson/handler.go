package commit_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/DS-SchedulingService/internal/api/middleware"
	commitLesson "github.com/m04kA/DS-SchedulingService/internal/usecase/commit_lesson"
)

// IdempotencyKeyHeader заголовок с ключом идемпотентности (UUID)
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	msgInvalidRequest     = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные занятия"
	msgInstructorNotFound = "инструктор не найден в школе"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgDuplicateRequest   = "запрос с таким ключом идемпотентности уже выполняется"
)

type Handler struct {
	useCase CommitLessonUseCase
	logger  Logger
}

func NewHandler(useCase CommitLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req CommitLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	// Автор занятия по умолчанию берётся из заголовка X-User-ID
	if req.CreatorID == nil {
		if userID, ok := middleware.GetUserID(r.Context()); ok {
			req.CreatorID = &userID
		}
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest(r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		h.logger.Warn("POST /lessons - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, commitLesson.ErrInvalidInput):
			h.logger.Warn("POST /lessons - Invalid input: school_id=%d, instructor_id=%d, error=%v",
				req.SchoolID, req.InstructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, commitLesson.ErrInstructorNotFound):
			h.logger.Warn("POST /lessons - Instructor not found: school_id=%d, instructor_id=%d",
				req.SchoolID, req.InstructorID)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, commitLesson.ErrSlotNotAvailable):
			h.logger.Warn("POST /lessons - Slot not available: instructor_id=%d, date=%s, %s-%s",
				req.InstructorID, req.Date, req.Start, req.End)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, commitLesson.ErrDuplicateRequest):
			h.logger.Warn("POST /lessons - Duplicate request in progress: school_id=%d", req.SchoolID)
			handlers.RespondConflict(w, msgDuplicateRequest)

		default:
			h.logger.Error("POST /lessons - Failed to create lesson: school_id=%d, instructor_id=%d, error=%v",
				req.SchoolID, req.InstructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /lessons - Lesson committed: lesson_id=%d, instructor_id=%d, replayed=%t",
		result.ID, result.InstructorID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
