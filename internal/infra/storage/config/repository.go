package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/pgerr"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

const table = "schedule_config"

var columns = []string{
	"id",
	"school_id",
	"office_id",
	"open_time",
	"close_time",
	"granularity_minutes",
	"durations",
	"reference_duration",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"school_id",
			"office_id",
			"open_time",
			"close_time",
			"granularity_minutes",
			"durations",
			"reference_duration",
		).
		Values(
			config.SchoolID,
			config.OfficeID,
			config.WorkingHours.Start,
			config.WorkingHours.End,
			config.GranularityMinutes,
			toInt64Array(config.Durations),
			config.ReferenceDuration,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerr.Is(err, pgerr.UniqueViolation) {
		return nil, ErrDuplicateConfig
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetBySchoolAndOffice получает конфигурацию ровно указанного уровня:
// officeID == nil - общешкольная, иначе конфигурация офиса
func (r *Repository) GetBySchoolAndOffice(ctx context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"school_id": schoolID})

	// Фильтрация по office_id (NULL или конкретное значение)
	if officeID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"office_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"office_id": *officeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySchoolAndOffice - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySchoolAndOffice - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация офиса (schoolID, officeID)
// 2. Общешкольная конфигурация (schoolID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, schoolID int64, officeID *int64) (*domain.ScheduleConfig, error) {
	// 1. Пробуем получить конфигурацию офиса (если офис указан)
	if officeID != nil {
		config, err := r.GetBySchoolAndOffice(ctx, schoolID, officeID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (office): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить общешкольную конфигурацию
	config, err := r.GetBySchoolAndOffice(ctx, schoolID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (school): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllBySchool получает все конфигурации школы, общешкольная первой
func (r *Repository) GetAllBySchool(ctx context.Context, schoolID int64) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("office_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySchool - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySchool - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)

	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllBySchool - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllBySchool - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Update обновляет конфигурацию расписания
func (r *Repository) Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("open_time", config.WorkingHours.Start).
		Set("close_time", config.WorkingHours.End).
		Set("granularity_minutes", config.GranularityMinutes).
		Set("durations", toInt64Array(config.Durations)).
		Set("reference_duration", config.ReferenceDuration).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.ID = id
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию расписания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var durations pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.SchoolID,
		&config.OfficeID,
		&config.WorkingHours.Start,
		&config.WorkingHours.End,
		&config.GranularityMinutes,
		&durations,
		&config.ReferenceDuration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.Durations = make([]int, len(durations))
	for i, d := range durations {
		config.Durations[i] = int(d)
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

func toInt64Array(values []int) pq.Int64Array {
	arr := make(pq.Int64Array, len(values))
	for i, v := range values {
		arr[i] = int64(v)
	}
	return arr
}
