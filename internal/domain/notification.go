package domain

// NotificationType kind of message sent after a lesson is committed
type NotificationType string

const (
	NotificationLessonAssigned  NotificationType = "lesson_assigned"  // to the instructor
	NotificationLessonConfirmed NotificationType = "lesson_confirmed" // to the student
	NotificationLessonReceipt   NotificationType = "lesson_receipt"   // to the creator
)

// NotificationPriority delivery priority hint for the dispatcher
type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is a one-way message for the notification dispatcher
type Notification struct {
	Type        NotificationType     `json:"type"`
	Message     string               `json:"message"`
	RecipientID int64                `json:"recipientId"`
	SchoolID    int64                `json:"schoolId"`
	OfficeID    *int64               `json:"officeId,omitempty"`
	Priority    NotificationPriority `json:"priority"`
}

// OutboxStatus state of an outbox event
type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxSent    OutboxStatus = "sent"
	OutboxFailed  OutboxStatus = "failed"
)

// OutboxEvent is a notification persisted in the same transaction as the lesson
type OutboxEvent struct {
	ID           int64
	EventID      string // UUID, dedup key for consumers
	LessonID     int64
	Notification Notification
	Status       OutboxStatus
	Attempts     int
	LastError    *string
}
