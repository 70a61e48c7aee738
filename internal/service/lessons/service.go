package lessons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	lessonRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/lesson"
	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
	"github.com/m04kA/DS-SchedulingService/pkg/ptr"
)

// Service сервис для чтения занятий и смены их статуса
type Service struct {
	lessonRepo LessonRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса занятий
func NewService(
	lessonRepo LessonRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		lessonRepo: lessonRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByID получает занятие по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.LessonResponse, error) {
	s.logger.Info("GetByID: fetching lesson id=%d", id)

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("GetByID: lesson id=%d not found", id)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("GetByID: repository error for lesson id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched lesson id=%d", id)
	return models.FromDomainLesson(lesson), nil
}

// GetStudentLessons получает историю занятий ученика.
// Опционально фильтрует по статусу, отменённые включаются только явным фильтром
func (s *Service) GetStudentLessons(ctx context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error) {
	s.logger.Info("GetStudentLessons: fetching lessons for student=%d, status=%v", req.StudentID, ptr.Deref(req.Status, "active"))

	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}

	filter := domain.LessonsFilter{StudentID: &req.StudentID}

	// Конвертируем статус из строки в domain.LessonStatus
	if req.Status != nil {
		status, err := models.ToDomainLessonStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentLessons: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	lessons, err := s.lessonRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudentLessons: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentLessons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentLessons: successfully fetched %d lessons for student=%d", len(lessons), req.StudentID)
	return models.FromDomainLessonList(lessons), nil
}

// GetSchoolLessons получает занятия школы с фильтрацией по офису, инструктору, дате и статусу
//
// Примеры использования:
// - Расписание на день: указать Date
// - Расписание инструктора: указать InstructorID и Date
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetSchoolLessons(ctx context.Context, req *models.GetSchoolLessonsRequest) (*models.LessonListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetSchoolLessons: fetching lessons for school=%d", req.SchoolID)
	if req.OfficeID != nil {
		logMsg += fmt.Sprintf(", office=%d", *req.OfficeID)
	}
	if req.InstructorID != nil {
		logMsg += fmt.Sprintf(", instructor=%d", *req.InstructorID)
	}
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.SchoolID <= 0 {
		return nil, fmt.Errorf("%w: schoolId must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSchoolLessons: invalid filter for school=%d: %v", req.SchoolID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	lessons, err := s.lessonRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSchoolLessons: repository error for school=%d: %v", req.SchoolID, err)
		return nil, fmt.Errorf("%w: GetSchoolLessons - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchoolLessons: successfully fetched %d lessons for school=%d", len(lessons), req.SchoolID)
	return models.FromDomainLessonList(lessons), nil
}

// UpdateStatus меняет статус занятия.
// Допустимые переходы: planned -> completed, planned -> cancelled
func (s *Service) UpdateStatus(ctx context.Context, lessonID int64, req *models.UpdateStatusRequest) (*models.LessonResponse, error) {
	s.logger.Info("UpdateStatus: updating lesson id=%d to status=%s by user=%v",
		lessonID, req.Status, ptr.Deref(req.UserID, 0))

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainLessonStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for lesson id=%d", req.Status, lessonID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var result *domain.Lesson

	// Блокируем строку занятия, чтобы два перехода не прошли одновременно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		lesson, err := s.lessonRepo.GetByIDForUpdate(txCtx, lessonID)
		if err != nil {
			if errors.Is(err, lessonRepo.ErrLessonNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !lesson.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: lesson id=%d cannot move from %s to %s", lessonID, lesson.Status, newStatus)
			return ErrInvalidTransition
		}

		if err := s.lessonRepo.UpdateStatus(txCtx, lessonID, newStatus); err != nil {
			if errors.Is(err, lessonRepo.ErrLessonNotFound) {
				return ErrLessonNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		lesson.Status = newStatus
		result = lesson
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrLessonNotFound):
			s.logger.Warn("UpdateStatus: lesson id=%d not found", lessonID)
			return nil, ErrLessonNotFound
		case errors.Is(err, ErrInvalidTransition):
			return nil, ErrInvalidTransition
		case errors.Is(err, ErrInternal):
			s.logger.Error("UpdateStatus: %v", err)
			return nil, err
		default:
			s.logger.Error("UpdateStatus: transaction failed for lesson id=%d: %v", lessonID, err)
			return nil, fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: successfully updated lesson id=%d to status=%s", lessonID, newStatus)
	return models.FromDomainLesson(result), nil
}
