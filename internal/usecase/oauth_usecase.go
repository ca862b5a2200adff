package usecase

import (
	"context"

	"healthmate/internal/domain/service"
)

// OAuthUsecase drives the third-party login handshake on a browser surface
// supplied by the embedding shell.
type OAuthUsecase interface {
	// LoginWithGoogle runs the whole authorization-code flow: fetch the
	// provider URL, navigate the surface, intercept the callback,
	// exchange the code and store the resulting session. The first
	// terminal outcome wins; later navigation events are ignored.
	LoginWithGoogle(ctx context.Context, surface service.BrowserSurface) (*LoginOutput, error)
}
