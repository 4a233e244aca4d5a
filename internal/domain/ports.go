package domain

import (
	"context"
	"time"
)

// Notifier delivers messages that originate outside an operator request,
// such as countdown reports from the cooking timer. Implementations can
// print to the terminal or play a sound.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Clock supplies wall-clock time. Tests swap in a clock they can advance.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
