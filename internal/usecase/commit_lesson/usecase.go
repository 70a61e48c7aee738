package commit_lesson

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/internal/infra/idempotency"
	instructorRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/instructor"
	lessonRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/lesson"
)

const (
	resultCreated  = "created"
	resultReplayed = "replayed"
	resultConflict = "conflict"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

// UseCase use case создания занятия
type UseCase struct {
	instructorRepo InstructorRepository
	lessonRepo     LessonRepository
	outboxRepo     OutboxRepository
	idempotency    IdempotencyStore
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
	newEventID     func() string
}

// NewUseCase создает новый экземпляр use case.
// idempotency может быть nil: тогда ключ идемпотентности игнорируется
func NewUseCase(
	instructorRepo InstructorRepository,
	lessonRepo LessonRepository,
	outboxRepo OutboxRepository,
	idempotency IdempotencyStore,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		instructorRepo: instructorRepo,
		lessonRepo:     lessonRepo,
		outboxRepo:     outboxRepo,
		idempotency:    idempotency,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
		newEventID:     uuid.NewString,
	}
}

// Execute выполняет use case создания занятия.
// Повторная проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// уведомления записываются в outbox той же транзакцией
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitLesson: school=%d, instructor=%d, date=%s, time=%s-%s",
		req.SchoolID, req.InstructorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitLesson: validation failed: %v", err)
		uc.metrics.IncLessonCommit(resultInvalid)
		return nil, err
	}

	// 2. Резервируем ключ идемпотентности
	scope := strconv.FormatInt(req.SchoolID, 10)
	reserved := false
	if uc.idempotency != nil && req.IdempotencyKey != "" {
		existingID, ok, err := uc.idempotency.Reserve(ctx, scope, req.IdempotencyKey)
		switch {
		case errors.Is(err, idempotency.ErrInProgress):
			uc.logger.Warn("CommitLesson: duplicate in-flight request key=%s", req.IdempotencyKey)
			uc.metrics.IncLessonCommit(resultConflict)
			return nil, ErrDuplicateRequest
		case err != nil:
			// Без Redis продолжаем без идемпотентности
			uc.logger.Error("CommitLesson: idempotency store unavailable, key=%s ignored: %v", req.IdempotencyKey, err)
		case !ok:
			return uc.replay(ctx, existingID, req.IdempotencyKey)
		default:
			reserved = true
		}
	}

	// 3. Проверяем и сохраняем занятие в сериализуемой транзакции
	created, err := uc.commit(ctx, req)
	if err != nil {
		if reserved {
			if releaseErr := uc.idempotency.Release(ctx, scope, req.IdempotencyKey); releaseErr != nil {
				uc.logger.Error("CommitLesson: failed to release idempotency key=%s: %v", req.IdempotencyKey, releaseErr)
			}
		}
		return nil, uc.fail(err)
	}

	// 4. Запоминаем результат под ключом идемпотентности
	if reserved {
		if err := uc.idempotency.Complete(ctx, scope, req.IdempotencyKey, created.ID); err != nil {
			uc.logger.Error("CommitLesson: failed to store idempotency key=%s for lesson id=%d: %v",
				req.IdempotencyKey, created.ID, err)
		}
	}

	uc.metrics.IncLessonCommit(resultCreated)
	uc.logger.Info("CommitLesson: successfully created lesson id=%d", created.ID)

	return newResponse(created, false), nil
}

func (uc *UseCase) commit(ctx context.Context, req *Request) (*domain.Lesson, error) {
	candidate := domain.Interval{Start: req.StartTime, End: req.EndTime}

	// Переменная для хранения результата
	var result *domain.Lesson

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Инструктор должен существовать и работать в школе
		in, err := uc.instructorRepo.GetByID(txCtx, req.InstructorID)
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			return ErrInstructorNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: failed to get instructor: %w", ErrInternal, err)
		}
		if in.SchoolID != req.SchoolID {
			return ErrInstructorNotFound
		}

		// 3.2. Блокируем занятия инструктора на дату и проверяем пересечения
		lessons, err := uc.lessonRepo.LockInstructorDay(txCtx, req.InstructorID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get instructor lessons: %w", ErrInternal, err)
		}

		if conflict := findOverlap(lessons, candidate); conflict != nil {
			uc.logger.Warn("CommitLesson: %s-%s overlaps lesson id=%d (%s-%s) of instructor=%d",
				candidate.Start, candidate.End, conflict.ID, conflict.StartTime, conflict.EndTime, req.InstructorID)
			return ErrSlotNotAvailable
		}

		// 3.3. Создаем занятие
		created, err := uc.lessonRepo.Create(txCtx, &domain.Lesson{
			SchoolID:     req.SchoolID,
			OfficeID:     req.OfficeID,
			InstructorID: req.InstructorID,
			StudentID:    req.StudentID,
			VehicleID:    req.VehicleID,
			LessonDate:   req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       domain.StatusPlanned,
			Comment:      req.Comment,
			CreatorID:    req.CreatorID,
		})
		switch {
		case errors.Is(err, lessonRepo.ErrOverlap):
			// Сработало exclusion-ограничение БД
			return ErrSlotNotAvailable
		case errors.Is(err, lessonRepo.ErrReferenceNotFound):
			return ErrInstructorNotFound
		case err != nil:
			return fmt.Errorf("%w: failed to create lesson: %w", ErrInternal, err)
		}

		// 3.4. Записываем уведомления в outbox
		if err := uc.outboxRepo.Insert(txCtx, buildNotifications(created, uc.newEventID)); err != nil {
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// replay возвращает занятие, уже созданное запросом с тем же ключом
func (uc *UseCase) replay(ctx context.Context, lessonID int64, key string) (*Response, error) {
	existing, err := uc.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		uc.logger.Error("CommitLesson: failed to load lesson id=%d for key=%s: %v", lessonID, key, err)
		uc.metrics.IncLessonCommit(resultError)
		return nil, fmt.Errorf("%w: failed to load replayed lesson: %v", ErrInternal, err)
	}

	uc.metrics.IncLessonCommit(resultReplayed)
	uc.logger.Info("CommitLesson: key=%s replayed, lesson id=%d", key, lessonID)

	return newResponse(existing, true), nil
}

// fail логирует ошибку, пишет метрику и приводит её к ошибкам use case
func (uc *UseCase) fail(err error) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("CommitLesson: slot not available")
		uc.metrics.IncLessonCommit(resultConflict)
		return ErrSlotNotAvailable
	case errors.Is(err, ErrInstructorNotFound):
		uc.logger.Warn("CommitLesson: instructor not found")
		uc.metrics.IncLessonCommit(resultNotFound)
		return ErrInstructorNotFound
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CommitLesson: %v", err)
		uc.metrics.IncLessonCommit(resultError)
		return err
	default:
		uc.logger.Error("CommitLesson: transaction failed: %v", err)
		uc.metrics.IncLessonCommit(resultError)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
