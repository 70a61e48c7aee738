package delete_schedule_config

import "context"

type ConfigDeleter interface {
	Delete(ctx context.Context, schoolID int64, officeID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
