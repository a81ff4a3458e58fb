package devicesync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/veritime/attendance-backend-go/internal/domain/employee"
	"github.com/veritime/attendance-backend-go/internal/domain/notification"
	"github.com/veritime/attendance-backend-go/internal/domain/syncfailure"
	"github.com/veritime/attendance-backend-go/internal/pkg/email"
)

// Alerter fans sync failures out to administrators: an in-app
// notification per admin plus one alert email. Delivery problems are
// logged, never propagated into the sync path.
type Alerter struct {
	employeeRepo    employee.Repository
	notificationSvc notification.Service
	emailSvc        email.Service
	// extraEmails are always-notified addresses from configuration, on
	// top of the admin directory.
	extraEmails []string
}

func NewAlerter(employeeRepo employee.Repository, notificationSvc notification.Service, emailSvc email.Service, extraEmails []string) *Alerter {
	return &Alerter{
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		extraEmails:     extraEmails,
	}
}

// NotifyFailure alerts administrators about a sync failure. Unmatched
// readings are audit-only and do not reach this path.
func (a *Alerter) NotifyFailure(ctx context.Context, kind syncfailure.Kind, message string, deviceAddress *string) {
	if kind == syncfailure.KindUnmatchedEmployee {
		return
	}

	admins, err := a.employeeRepo.ListAdmins(ctx)
	if err != nil {
		slog.Error("Failed to load admins for sync failure alert", "error", err)
		return
	}

	address := ""
	if deviceAddress != nil {
		address = *deviceAddress
	}

	for _, admin := range admins {
		req := notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			Type:        notification.TypeSyncFailed,
			Title:       "Device sync failure",
			Message:     fmt.Sprintf("Attendance sync failed (%s): %s", kind, message),
			Data: map[string]interface{}{
				"kind":           string(kind),
				"device_address": address,
			},
		}
		if err := a.notificationSvc.QueueNotification(ctx, req); err != nil {
			slog.Error("Failed to queue sync failure notification", "recipient", admin.ID, "error", err)
		}
	}

	seen := make(map[string]struct{})
	var recipients []string
	for _, admin := range admins {
		if admin.Email != nil && *admin.Email != "" {
			if _, dup := seen[*admin.Email]; !dup {
				seen[*admin.Email] = struct{}{}
				recipients = append(recipients, *admin.Email)
			}
		}
	}
	for _, addr := range a.extraEmails {
		if _, dup := seen[addr]; !dup {
			seen[addr] = struct{}{}
			recipients = append(recipients, addr)
		}
	}

	if err := a.emailSvc.SendSyncFailureAlert(recipients, string(kind), message, address, time.Now()); err != nil {
		slog.Error("Failed to send sync failure alert email", "error", err)
	}
}

// NotifyCompleted posts an in-app notice to administrators after a sync
// that actually changed data. No email; success is not actionable.
func (a *Alerter) NotifyCompleted(ctx context.Context, recordsAdded, pairsReconciled, unmatched int) {
	admins, err := a.employeeRepo.ListAdmins(ctx)
	if err != nil {
		slog.Error("Failed to load admins for sync completion notice", "error", err)
		return
	}

	for _, admin := range admins {
		req := notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			Type:        notification.TypeSyncCompleted,
			Title:       "Device sync completed",
			Message:     fmt.Sprintf("%d new scans, %d days reconciled", recordsAdded, pairsReconciled),
			Data: map[string]interface{}{
				"records_added":      recordsAdded,
				"pairs_reconciled":   pairsReconciled,
				"unmatched_readings": unmatched,
			},
		}
		if err := a.notificationSvc.QueueNotification(ctx, req); err != nil {
			slog.Error("Failed to queue sync completion notification", "recipient", admin.ID, "error", err)
		}
	}
}
