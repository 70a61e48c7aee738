package commit_lesson

import (
	"context"

	commitLesson "github.com/m04kA/DS-SchedulingService/internal/usecase/commit_lesson"
)

type CommitLessonUseCase interface {
	Execute(ctx context.Context, req *commitLesson.Request) (*commitLesson.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
