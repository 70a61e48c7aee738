package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	configRepo ConfigRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetWithHierarchy получает действующую конфигурацию.
// Приоритет: office > school > встроенные значения по умолчанию
func (s *Service) GetWithHierarchy(ctx context.Context, schoolID int64, officeID *int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for school=%d, office=%v", schoolID, officeID)

	if schoolID <= 0 {
		return nil, fmt.Errorf("%w: schoolId must be positive", ErrInvalidInput)
	}

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, schoolID, officeID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("GetWithHierarchy: repository error: %v", err)
			return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("GetWithHierarchy: no stored config for school=%d, using defaults", schoolID)
		config = domain.DefaultScheduleConfig(schoolID)
		config.OfficeID = officeID
	}

	s.logger.Info("GetWithHierarchy: resolved config id=%d (level: %s)", config.ID, models.Level(config))
	return models.FromDomainConfig(config), nil
}

// GetAllBySchool получает все сохранённые конфигурации школы
func (s *Service) GetAllBySchool(ctx context.Context, schoolID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllBySchool: fetching configs for school=%d", schoolID)

	configs, err := s.configRepo.GetAllBySchool(ctx, schoolID)
	if err != nil {
		s.logger.Error("GetAllBySchool: repository error for school=%d: %v", schoolID, err)
		return nil, fmt.Errorf("%w: GetAllBySchool - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllBySchool: successfully fetched %d configs for school=%d", len(configs), schoolID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает конфигурацию уровня школы или офиса либо заменяет существующую.
// Возвращает created = true, если конфигурация создана
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, bool, error) {
	s.logger.Info("Upsert: saving config for school=%d, office=%v", req.SchoolID, req.OfficeID)

	// 1. Валидируем входные данные
	config := req.ToDomainConfig()
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, false, err
	}

	var (
		saved   *domain.ScheduleConfig
		created bool
	)

	// 2. Ищем существующую конфигурацию того же уровня и сохраняем
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.configRepo.GetBySchoolAndOffice(txCtx, req.SchoolID, req.OfficeID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			return fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
		}

		if existing == nil {
			saved, err = s.configRepo.Create(txCtx, config)
			if errors.Is(err, configRepo.ErrDuplicateConfig) {
				return ErrConfigAlreadyExists
			}
			if err != nil {
				return fmt.Errorf("%w: Upsert - create error: %v", ErrInternal, err)
			}
			created = true
			return nil
		}

		saved, err = s.configRepo.Update(txCtx, existing.ID, config)
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return ErrConfigNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: Upsert - update error: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrConfigAlreadyExists) || errors.Is(err, ErrConfigNotFound) {
			s.logger.Warn("Upsert: concurrent change for school=%d, office=%v: %v", req.SchoolID, req.OfficeID, err)
			return nil, false, err
		}
		s.logger.Error("Upsert: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("%w: Upsert - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d (created=%t)", saved.ID, created)
	return models.FromDomainConfig(saved), created, nil
}

// Delete удаляет конфигурацию уровня школы или офиса
func (s *Service) Delete(ctx context.Context, schoolID int64, officeID *int64) error {
	s.logger.Info("Delete: deleting config for school=%d, office=%v", schoolID, officeID)

	config, err := s.configRepo.GetBySchoolAndOffice(ctx, schoolID, officeID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config for school=%d, office=%v not found", schoolID, officeID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.configRepo.Delete(ctx, config.ID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found during deletion", config.ID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", config.ID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", config.ID)
	return nil
}

// validateConfig валидирует параметры конфигурации
func validateConfig(c *domain.ScheduleConfig) error {
	if c.SchoolID <= 0 {
		return fmt.Errorf("%w: schoolId must be positive", ErrInvalidInput)
	}

	if c.OfficeID != nil && *c.OfficeID <= 0 {
		return fmt.Errorf("%w: officeId must be positive", ErrInvalidInput)
	}

	if !c.WorkingHours.IsValid() {
		return fmt.Errorf("%w: working hours %s-%s are invalid", ErrInvalidInput, c.WorkingHours.Start, c.WorkingHours.End)
	}

	// Проверяем granularityMinutes
	if c.GranularityMinutes < domain.MinGranularityMinutes || c.GranularityMinutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("%w: granularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}

	if len(c.Durations) > domain.MaxDurationsCount {
		return fmt.Errorf("%w: at most %d durations are allowed", ErrInvalidInput, domain.MaxDurationsCount)
	}

	// Проверяем длительности вместе с опорной
	for _, d := range append(append([]int(nil), c.Durations...), c.ReferenceDuration) {
		if d < domain.MinDurationMinutes || d > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration %d must be between %d and %d",
				ErrInvalidInput, d, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	return nil
}
