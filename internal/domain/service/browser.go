package service

import (
	"context"

	"healthmate/internal/domain/entity"
)

// BrowserSurface abstracts the navigable browser surface the OAuth handshake
// drives. The embedding shell owns the real window; this interface only
// exposes what the handshake needs: navigation commands out, navigation
// events in. Keeping the event stream here lets the race-handling logic be
// unit-tested against synthetic sequences.
type BrowserSurface interface {
	// LoadURL navigates the surface. The handshake uses it for the
	// provider authorization page, the post-login dashboard and the
	// login-page recovery.
	LoadURL(ctx context.Context, url string) error

	// Events delivers navigation observations in the order the surface
	// saw them. The channel is closed when the surface goes away.
	Events() <-chan entity.NavigationEvent
}
