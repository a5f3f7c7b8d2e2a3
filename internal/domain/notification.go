package domain

import "context"

// NotificationService defines the interface for notification services
type NotificationService interface {
	// SendError reports a command that failed unexpectedly
	SendError(ctx context.Context, report ErrorReport) error
}

// ErrorReport describes a failed command
type ErrorReport struct {
	RequestID string
	ChatID    int64
	SenderID  int64
	Command   string
	Err       error
}
