package commit_lesson

import (
	"context"
	"time"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// InstructorRepository интерфейс справочника инструкторов
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
}

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)
	// LockInstructorDay получает активные занятия инструктора на дату с блокировкой строк
	LockInstructorDay(ctx context.Context, instructorID int64, date time.Time) ([]*domain.Lesson, error)
}

// OutboxRepository интерфейс outbox-таблицы уведомлений
type OutboxRepository interface {
	Insert(ctx context.Context, events []*domain.OutboxEvent) error
}

// IdempotencyStore интерфейс хранилища ключей идемпотентности
type IdempotencyStore interface {
	Reserve(ctx context.Context, scope, key string) (lessonID int64, reserved bool, err error)
	Complete(ctx context.Context, scope, key string, lessonID int64) error
	Release(ctx context.Context, scope, key string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик создания занятий
type Metrics interface {
	IncLessonCommit(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
