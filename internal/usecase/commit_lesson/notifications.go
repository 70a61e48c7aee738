package commit_lesson

import (
	"fmt"

	"github.com/m04kA/DS-SchedulingService/internal/domain"
)

// buildNotifications формирует до трёх уведомлений: инструктору, ученику (если указан)
// и создателю занятия (если указан)
func buildNotifications(l *domain.Lesson, newEventID func() string) []*domain.OutboxEvent {
	when := fmt.Sprintf("%s %s-%s", l.LessonDate.Format("02.01.2006"), l.StartTime, l.EndTime)

	notifications := []domain.Notification{{
		Type:        domain.NotificationLessonAssigned,
		Message:     fmt.Sprintf("Вам назначено новое занятие %s", when),
		RecipientID: l.InstructorID,
		SchoolID:    l.SchoolID,
		OfficeID:    l.OfficeID,
		Priority:    domain.PriorityHigh,
	}}

	if l.HasStudent() {
		notifications = append(notifications, domain.Notification{
			Type:        domain.NotificationLessonConfirmed,
			Message:     fmt.Sprintf("Вы записаны на занятие %s", when),
			RecipientID: *l.StudentID,
			SchoolID:    l.SchoolID,
			OfficeID:    l.OfficeID,
			Priority:    domain.PriorityHigh,
		})
	}

	if l.CreatorID != nil {
		notifications = append(notifications, domain.Notification{
			Type:        domain.NotificationLessonReceipt,
			Message:     fmt.Sprintf("Занятие %s создано", when),
			RecipientID: *l.CreatorID,
			SchoolID:    l.SchoolID,
			OfficeID:    l.OfficeID,
			Priority:    domain.PriorityNormal,
		})
	}

	events := make([]*domain.OutboxEvent, len(notifications))
	for i, n := range notifications {
		events[i] = &domain.OutboxEvent{
			EventID:      newEventID(),
			LessonID:     l.ID,
			Notification: n,
			Status:       domain.OutboxPending,
		}
	}
	return events
}
