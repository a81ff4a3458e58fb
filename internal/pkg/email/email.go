package email

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/veritime/attendance-backend-go/internal/config"
)

const maxRetries = 3

// Service defines the interface for sending admin alert emails
type Service interface {
	SendSyncFailureAlert(to []string, kind, message, deviceAddress string, occurredAt time.Time) error
}

type serviceImpl struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewService creates a new email service instance
func NewService(cfg config.SMTPConfig) Service {
	return &serviceImpl{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendSyncFailureAlert notifies administrators of a device sync failure.
func (s *serviceImpl) SendSyncFailureAlert(to []string, kind, message, deviceAddress string, occurredAt time.Time) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" || len(to) == 0 {
		slog.Warn("SMTP not configured or no recipients, skipping sync failure alert", "kind", kind)
		return nil
	}

	subject := fmt.Sprintf("Attendance sync failure: %s", kind)
	body := fmt.Sprintf(
		"<p>A device synchronization failure was recorded.</p>"+
			"<ul>"+
			"<li><b>Kind:</b> %s</li>"+
			"<li><b>Device:</b> %s</li>"+
			"<li><b>Time:</b> %s</li>"+
			"</ul>"+
			"<p>%s</p>"+
			"<p>Review the sync failure audit trail for details and resolution.</p>",
		kind, deviceAddress, occurredAt.Format(time.RFC1123), message,
	)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.dialer.DialAndSend(m)
		if err == nil {
			slog.Info("Sync failure alert sent", "recipients", len(to), "kind", kind, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send sync failure alert",
			"kind", kind,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send sync failure alert after %d attempts: %w", maxRetries, lastErr)
}
