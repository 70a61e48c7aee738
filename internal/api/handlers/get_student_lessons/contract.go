package get_student_lessons

import (
	"context"

	"github.com/m04kA/DS-SchedulingService/internal/service/lessons/models"
)

type StudentLessonsService interface {
	GetStudentLessons(ctx context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
