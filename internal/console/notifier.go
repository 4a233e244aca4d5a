package console

import (
	"context"

	"github.com/hammamikhairi/ricecooker/internal/domain"
	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// CLINotifier prints countdown notifications through the console printer.
type CLINotifier struct {
	log *logger.Logger
	out Printer
}

// NewCLINotifier creates a notifier that writes to out.
func NewCLINotifier(log *logger.Logger, out Printer) *CLINotifier {
	return &CLINotifier{log: log, out: out}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.out.PrintChat(message)
	return nil
}

// NotifyUrgent prints an urgent notification.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.out.PrintUrgent(message)
	return nil
}
