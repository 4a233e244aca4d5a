package chime

import (
	"context"

	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// Sounder plays PCM. *Player satisfies it.
type Sounder interface {
	Play(pcm []byte) error
	Stop()
}

// Bell rings one sound on a background goroutine. Rings that arrive while
// one is already pending are merged.
type Bell struct {
	sounder Sounder
	pcm     []byte
	log     *logger.Logger
	ring    chan struct{}
	done    chan struct{}
}

// NewBell creates a bell that plays pcm through sounder.
func NewBell(sounder Sounder, pcm []byte, log *logger.Logger) *Bell {
	return &Bell{
		sounder: sounder,
		pcm:     pcm,
		log:     log,
		ring:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Start runs the playback loop until ctx is cancelled. Non-blocking.
func (b *Bell) Start(ctx context.Context) {
	go b.loop(ctx)
}

// Done is closed once the playback loop has exited.
func (b *Bell) Done() <-chan struct{} {
	return b.done
}

// Ring asks for the sound to be played. Non-blocking.
func (b *Bell) Ring() {
	select {
	case b.ring <- struct{}{}:
	default: // already pending
	}
}

func (b *Bell) loop(ctx context.Context) {
	defer close(b.done)

	for {
		select {
		case <-ctx.Done():
			b.sounder.Stop()
			return
		case <-b.ring:
			if err := b.sounder.Play(b.pcm); err != nil {
				b.log.Error("chime: %v", err)
			}
		}
	}
}
