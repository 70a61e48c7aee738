package update_schedule_config

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/config/models"
)

type ConfigUpserter interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
