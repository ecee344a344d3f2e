package production

import (
	"context"

	"github.com/comalice/microstep/internal/core"
)

// ChannelPublisher forwards committed transition records to a Go channel.
// Non-blocking publish with drop on backpressure; pair its Listen method
// with core.WithListener to observe every committed microstep.
type ChannelPublisher struct {
	ch chan<- core.TransitionRecord
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- core.TransitionRecord) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish forwards one record, dropping it if the channel is full.
func (p *ChannelPublisher) Publish(ctx context.Context, record core.TransitionRecord) error {
	select {
	case p.ch <- record:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

// Listen adapts the publisher to the engine's listener hook.
func (p *ChannelPublisher) Listen() core.Listener {
	return func(record core.TransitionRecord) {
		_ = p.Publish(context.Background(), record)
	}
}

// Close closes the underlying channel.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
