package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error
	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())
	Stop()
}
