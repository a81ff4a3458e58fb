package notification

import (
	"time"
)

// CreateNotificationRequest is the input for queueing a notification.
type CreateNotificationRequest struct {
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// NotificationResponse is the API shape of a notification.
type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NotificationListResponse is the paginated listing shape.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// UnreadCountResponse is the unread counter shape.
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// MarkAsReadRequest lists notification ids to mark read.
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

// SSEEvent is a server-sent event pushed to a subscriber.
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
