package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeSyncFailed    NotificationType = "sync_failed"
	TypeSyncCompleted NotificationType = "sync_completed"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
