package compute_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/config"
)

// UseCase use case расчёта свободных слотов инструкторов
type UseCase struct {
	instructorRepo InstructorRepository
	lessonRepo     LessonRepository
	configRepo     ConfigRepository
	txManager      TransactionManager
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	instructorRepo InstructorRepository,
	lessonRepo LessonRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		instructorRepo: instructorRepo,
		lessonRepo:     lessonRepo,
		configRepo:     configRepo,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute выполняет расчёт свободных слотов.
// Инструкторы, занятия и конфигурация читаются один раз в одной read-only транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveAvailability(time.Since(started)) }()

	uc.logger.Info("ComputeAvailability: school=%d, office=%v, date=%s",
		req.SchoolID, officeLabel(req.OfficeID), req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeAvailability: validation failed: %v", err)
		return nil, err
	}

	var (
		g           grid
		instructors []*domain.Instructor
		lessons     []*domain.Lesson
	)

	// 2. Читаем всё из одного снимка данных
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.SchoolID, req.OfficeID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = domain.DefaultScheduleConfig(req.SchoolID)
			uc.logger.Info("ComputeAvailability: using default config for school=%d", req.SchoolID)
		}

		g = resolveGrid(req, config)

		// 2.2. Получаем инструкторов школы (с фильтром по офису)
		instructors, err = uc.instructorRepo.GetBySchool(txCtx, req.SchoolID, req.OfficeID)
		if err != nil {
			return fmt.Errorf("%w: failed to get instructors: %v", ErrInternal, err)
		}

		// 2.3. Фильтр по офису не дал инструкторов: берём всех инструкторов школы
		if len(instructors) == 0 && req.OfficeID != nil {
			uc.logger.Warn("ComputeAvailability: no instructors in office=%d, falling back to all instructors of school=%d",
				*req.OfficeID, req.SchoolID)

			instructors, err = uc.instructorRepo.GetBySchool(txCtx, req.SchoolID, nil)
			if err != nil {
				return fmt.Errorf("%w: failed to get school instructors: %v", ErrInternal, err)
			}
		}

		if len(instructors) == 0 {
			return nil
		}

		// 2.4. Получаем активные занятия инструкторов на дату
		date := req.Date
		lessons, err = uc.lessonRepo.GetByFilter(txCtx, domain.LessonsFilter{
			SchoolID:      req.SchoolID,
			InstructorIDs: instructorIDs(instructors),
			Date:          &date,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get lessons: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("ComputeAvailability: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Проверяем итоговые параметры сетки
	if g.granularity <= 0 || !g.hours.IsValid() {
		uc.logger.Warn("ComputeAvailability: invalid grid for school=%d: hours=%s-%s, granularity=%d",
			req.SchoolID, g.hours.Start, g.hours.End, g.granularity)
		return nil, fmt.Errorf("%w: invalid grid parameters", ErrInvalidInput)
	}

	// 4. Вычисляем доступность
	rows := computeGrid(instructors, lessons, g)
	slots := visibleSlots(rows)

	uc.logger.Info("ComputeAvailability: %d slots, %d instructors, %d lessons for school=%d, date=%s",
		len(slots), len(instructors), len(lessons), req.SchoolID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:              req.Date,
		WorkingHours:      g.hours,
		Granularity:       g.granularity,
		Durations:         g.durations,
		ReferenceDuration: g.reference,
		Slots:             slots,
		Grid:              rows,
		Directory:         domain.NewInstructorDirectory(instructors),
	}, nil
}

func officeLabel(officeID *int64) string {
	if officeID == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *officeID)
}
