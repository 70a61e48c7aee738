package config

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetBySchoolAndOffice(ctx context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error)
	GetAllBySchool(ctx context.Context, schoolID int64) ([]*domain.ScheduleConfig, error)
	Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
