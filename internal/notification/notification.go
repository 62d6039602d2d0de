package notification

import (
	"context"
	"log/slog"
)

// Event kinds emitted by the auth surface.
const (
	// KindLogin indicates a successful authentication.
	KindLogin = "user_login"
	// KindSignup indicates a newly registered account.
	KindSignup = "user_signup"
)

// Event describes an account activity notification.
type Event struct {
	Kind     string
	UserID   string
	Email    string
	UserType string
}

// Notifier delivers account events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// LoggerNotifier is a stub implementation that writes events to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the event to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, event Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("account event", "kind", event.Kind, "user_id", event.UserID, "user_type", event.UserType)
	return nil
}
