package bridge

import (
	"context"

	"healthmate/internal/domain/entity"

	"github.com/pkg/errors"
)

const (
	commandBuffer = 4
	eventBuffer   = 16
)

// navSurface implements service.BrowserSurface across the bridge. The shell
// owns the real window: it long-polls navigation commands and reports the
// window's navigation observations back, which become the handshake's event
// stream. One surface lives exactly as long as one handshake attempt.
type navSurface struct {
	commands chan string
	events   chan entity.NavigationEvent
}

func newNavSurface() *navSurface {
	return &navSurface{
		commands: make(chan string, commandBuffer),
		events:   make(chan entity.NavigationEvent, eventBuffer),
	}
}

// LoadURL queues a navigation command for the shell.
func (s *navSurface) LoadURL(ctx context.Context, url string) error {
	select {
	case s.commands <- url:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "surface command queue is stalled")
	}
}

// Events implements service.BrowserSurface.
func (s *navSurface) Events() <-chan entity.NavigationEvent {
	return s.events
}

// offer hands an observation to the handshake. Events beyond the buffer are
// dropped: once the handshake settles nothing drains the channel, and the
// latch makes late events no-ops anyway.
func (s *navSurface) offer(event entity.NavigationEvent) bool {
	select {
	case s.events <- event:
		return true
	default:
		return false
	}
}

// nextCommand blocks until a navigation command is queued or the context
// expires.
func (s *navSurface) nextCommand(ctx context.Context) (string, bool) {
	select {
	case url := <-s.commands:
		return url, true
	case <-ctx.Done():
		return "", false
	}
}
