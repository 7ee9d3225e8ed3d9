// Package notify is the advisory notification side channel.
//
// Services emit human-readable success/failure notifications for the
// presentation layer to render. The channel is fire-and-forget: a
// notification never affects the return value or control flow of the
// operation that emitted it.
package notify

import "log/slog"

// Severity classifies a notification for rendering purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is one advisory message.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier receives advisory notifications. Implementations must not block
// the caller and must not fail in a way the caller can observe.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the default slog logger. It is the
// default sink when no presentation channel is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	switch n.Severity {
	case SeverityError:
		slog.Error(n.Title, "description", n.Description)
	case SeverityWarning:
		slog.Warn(n.Title, "description", n.Description)
	default:
		slog.Info(n.Title, "description", n.Description)
	}
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
