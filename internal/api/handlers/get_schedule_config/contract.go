package get_schedule_config

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
)

type ConfigGetter interface {
	GetWithHierarchy(ctx context.Context, schoolID int64, officeID *int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
