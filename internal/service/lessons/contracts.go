package lessons

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Lesson, error)
	GetByFilter(ctx context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LessonStatus) error
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
