// Package email defines the outgoing mail collaborator used by the password
// recovery flow. Delivery transport is pluggable; the default implementation
// only logs, which is what local development and tests want.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fleetdesk/fleet-api/internal/config"
)

// Sender delivers transactional mail to users.
type Sender interface {
	// SendPasswordRecovery sends a password recovery link containing the given
	// reset token to the recipient address.
	SendPasswordRecovery(ctx context.Context, to, resetToken string) error
}

// LogSender is a Sender that writes the message to the structured log instead
// of delivering it. Used in development and tests.
type LogSender struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

// NewLogSender creates a LogSender with the given email settings.
// If logger is nil, the default logger is used.
func NewLogSender(cfg config.EmailConfig, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "email_sender")),
	}
}

// Ensure LogSender implements Sender interface
var _ Sender = (*LogSender)(nil)

// SendPasswordRecovery implements Sender.SendPasswordRecovery
func (s *LogSender) SendPasswordRecovery(ctx context.Context, to, resetToken string) error {
	link := fmt.Sprintf("%s?token=%s", s.cfg.ResetURLBase, resetToken)

	s.logger.Info("password recovery email",
		slog.String("from", s.cfg.FromAddress),
		slog.String("to", to),
		slog.String("link", link))
	return nil
}
