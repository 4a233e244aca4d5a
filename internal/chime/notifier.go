package chime

import (
	"context"

	"github.com/hammamikhairi/ricecooker/internal/domain"
	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Notifier)(nil)

// Ringer is anything that can be rung. *Bell satisfies it.
type Ringer interface {
	Ring()
}

// Notifier wraps a text notifier and rings on urgent notifications, which is
// how the cooker reports a cycle that ended on its own.
type Notifier struct {
	text domain.Notifier
	bell Ringer
	log  *logger.Logger
}

// NewNotifier creates a notifier that prints through text and rings bell.
func NewNotifier(text domain.Notifier, bell Ringer, log *logger.Logger) *Notifier {
	return &Notifier{
		text: text,
		bell: bell,
		log:  log,
	}
}

// Notify prints the message.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	return n.text.Notify(ctx, message)
}

// NotifyUrgent prints the message and rings the bell.
func (n *Notifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.log.Debug("chime: ringing for %q", message)
	n.bell.Ring()
	return nil
}
