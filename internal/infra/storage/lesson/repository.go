package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/pgerr"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

const table = "lessons"

var columns = []string{
	"id",
	"school_id",
	"office_id",
	"instructor_id",
	"student_id",
	"vehicle_id",
	"lesson_date",
	"start_time",
	"end_time",
	"status",
	"comment",
	"creator_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с занятиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое занятие.
// Если в контексте передана активная транзакция, использует её.
// Нарушение exclusion-ограничения lessons_no_overlap возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"school_id",
			"office_id",
			"instructor_id",
			"student_id",
			"vehicle_id",
			"lesson_date",
			"start_time",
			"end_time",
			"status",
			"comment",
			"creator_id",
		).
		Values(
			lesson.SchoolID,
			lesson.OfficeID,
			lesson.InstructorID,
			lesson.StudentID,
			lesson.VehicleID,
			lesson.LessonDate.Format(domain.DateFormat),
			lesson.StartTime,
			lesson.EndTime,
			lesson.Status,
			lesson.Comment,
			lesson.CreatorID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&lesson.ID,
		&createdAt,
		&updatedAt,
	)

	switch {
	case err == nil:
	case pgerr.Is(err, pgerr.ExclusionViolation):
		return nil, ErrOverlap
	case pgerr.Is(err, pgerr.ForeignKeyViolation):
		return nil, ErrReferenceNotFound
	default:
		// %w сохраняет *pq.Error для повтора сериализуемой транзакции
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time

	return lesson, nil
}

// GetByID получает занятие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает занятие по ID с блокировкой строки.
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Lesson, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lesson, err := scanLesson(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lesson: %v", ErrScanRow, err)
	}

	return lesson, nil
}

// GetByFilter получает занятия (школы, если задана) с фильтрацией по офису, инструкторам, ученику, дате и статусу.
// Для конкретной даты сортирует по времени начала, иначе сначала новые
func (r *Repository) GetByFilter(ctx context.Context, filter domain.LessonsFilter) ([]*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table)

	if filter.SchoolID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"school_id": filter.SchoolID})
	}

	if filter.OfficeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"office_id": *filter.OfficeID})
	}

	if len(filter.InstructorIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instructor_id": filter.InstructorIDs})
	}

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lesson_date": filter.Date.Format(domain.DateFormat)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatuses()})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("instructor_id ASC", "start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("lesson_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// LockInstructorDay получает активные занятия инструктора на дату с блокировкой строк (FOR UPDATE).
// Вызывать только внутри транзакции создания занятия
func (r *Repository) LockInstructorDay(ctx context.Context, instructorID int64, date time.Time) ([]*domain.Lesson, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Eq{"lesson_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": inactiveStatuses()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockInstructorDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LockInstructorDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// UpdateStatus обновляет статус занятия
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.LessonStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLessonNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var lesson domain.Lesson
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&lesson.ID,
		&lesson.SchoolID,
		&lesson.OfficeID,
		&lesson.InstructorID,
		&lesson.StudentID,
		&lesson.VehicleID,
		&lesson.LessonDate,
		&lesson.StartTime,
		&lesson.EndTime,
		&lesson.Status,
		&lesson.Comment,
		&lesson.CreatorID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lesson.CreatedAt = createdAt.Time
	lesson.UpdatedAt = updatedAt.Time

	return &lesson, nil
}

// scanLessons сканирует результаты запроса в слайс занятий
func scanLessons(rows *sql.Rows) ([]*domain.Lesson, error) {
	lessons := make([]*domain.Lesson, 0)

	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanLessons - scan row: %v", ErrScanRow, err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLessons - rows error: %v", ErrScanRow, err)
	}

	return lessons, nil
}

func inactiveStatuses() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
