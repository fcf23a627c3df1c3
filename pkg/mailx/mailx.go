// Package mailx delivers transactional mail. The IAM core treats delivery
// as fire-and-forget: the OTP engine hands off a message and never consumes
// a delivery guarantee.
package mailx

import (
	"context"
	"log/slog"
)

// Mailer sends a single HTML message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogMailer writes messages to the log instead of sending them. Used in dev
// and in tests, where the OTP code can be read from storage anyway.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail (not sent, log mailer)",
		"to", to,
		"subject", subject,
		"body", htmlBody,
	)
	return nil
}
