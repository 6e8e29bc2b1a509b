// Package notify delivers user-visible notifications for phase changes.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
)

// ErrNoApp indicates the fyne notifier was built without an application.
var ErrNoApp = errors.New("notify: no fyne application")

// Fyne sends desktop notifications through the running fyne application.
type Fyne struct {
	app fyne.App
}

// NewFyne creates a notifier bound to app.
func NewFyne(app fyne.App) *Fyne {
	return &Fyne{app: app}
}

// Notify posts a desktop notification.
func (notifier *Fyne) Notify(ctx context.Context, title, body string) error {
	if notifier == nil || notifier.app == nil {
		return ErrNoApp
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	notifier.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}

// Log writes notifications to a logger. The terminal driver uses it where no
// desktop notification service is available.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging notifier. A nil logger uses slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Notify logs the notification at info level.
func (notifier *Log) Notify(ctx context.Context, title, body string) error {
	notifier.logger.InfoContext(ctx, "notification", slog.String("title", title), slog.String("body", body))
	return nil
}
