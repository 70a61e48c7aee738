package list_schedule_configs

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
)

type ConfigLister interface {
	GetAllBySchool(ctx context.Context, schoolID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
