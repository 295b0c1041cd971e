package mocks

import (
	"context"

	"github.com/fleetdesk/fleet-api/internal/platform/email"
)

// MockEmailSender implements email.Sender for testing
type MockEmailSender struct {
	// SendPasswordRecoveryFn allows for custom send logic in tests
	SendPasswordRecoveryFn func(ctx context.Context, to, resetToken string) error

	// Recorded arguments from the last send
	SentTo    string
	SentToken string
	SendCount int

	// Err is returned by the default implementation when set
	Err error
}

// Ensure MockEmailSender implements email.Sender
var _ email.Sender = (*MockEmailSender)(nil)

// SendPasswordRecovery implements the email.Sender interface
func (m *MockEmailSender) SendPasswordRecovery(ctx context.Context, to, resetToken string) error {
	m.SendCount++
	m.SentTo = to
	m.SentToken = resetToken

	if m.SendPasswordRecoveryFn != nil {
		return m.SendPasswordRecoveryFn(ctx, to, resetToken)
	}

	return m.Err
}
