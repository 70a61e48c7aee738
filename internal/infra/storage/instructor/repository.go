package instructor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/psqlbuilder"
)

const table = "instructors"

var columns = []string{"id", "school_id", "office_id", "name"}

// Repository репозиторий справочника инструкторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инструкторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает инструктора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var in domain.Instructor
	err = executor.QueryRowContext(ctx, query, args...).Scan(&in.ID, &in.SchoolID, &in.OfficeID, &in.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan instructor: %w", ErrScanRow, err)
	}

	return &in, nil
}

// GetBySchool получает инструкторов школы, при officeID != nil только инструкторов офиса
func (r *Repository) GetBySchool(ctx context.Context, schoolID int64, officeID *int64) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("id ASC")

	if officeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"office_id": *officeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySchool - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySchool - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	instructors := make([]*domain.Instructor, 0)
	for rows.Next() {
		var in domain.Instructor
		if err := rows.Scan(&in.ID, &in.SchoolID, &in.OfficeID, &in.Name); err != nil {
			return nil, fmt.Errorf("%w: GetBySchool - scan row: %v", ErrScanRow, err)
		}
		instructors = append(instructors, &in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySchool - rows error: %v", ErrScanRow, err)
	}

	return instructors, nil
}
