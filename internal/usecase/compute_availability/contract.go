package compute_availability

import (
	"context"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// InstructorRepository интерфейс справочника инструкторов
type InstructorRepository interface {
	GetBySchool(ctx context.Context, schoolID int64, officeID *int64) ([]*domain.Instructor, error)
}

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByFilter(ctx context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик расчёта
type Metrics interface {
	ObserveAvailability(d time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
