package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"healthmate/config"
	deliverycontext "healthmate/internal/delivery/context"
	"healthmate/internal/domain/entity"
	domainerrors "healthmate/internal/domain/errors"
	"healthmate/internal/domain/repository"
	"healthmate/internal/domain/service"
	"healthmate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// callbackMarker distinguishes the provider's redirect back to the backend
// from every other navigation the surface performs.
const callbackMarker = "/auth/callback"

// recoveryTimeout bounds the best-effort navigation back to the login page
// after a failed handshake.
const recoveryTimeout = 5 * time.Second

// oauthService implements the OAuthUsecase interface. One call to
// LoginWithGoogle is one handshake attempt: the navigation-event fold and
// the whole-flow timeout race, and the first terminal outcome wins.
type oauthService struct {
	api    service.APIClient
	store  repository.CredentialStore
	cfg    *config.Config
	logger *slog.Logger
}

// OAuthServiceParams holds dependencies for oauthService, injected by Fx.
type OAuthServiceParams struct {
	fx.In

	API    service.APIClient
	Store  repository.CredentialStore
	Config *config.Config
	Logger *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	return &oauthService{
		api:    params.API,
		store:  params.Store,
		cfg:    params.Config,
		logger: params.Logger,
	}
}

func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LoginWithGoogle drives the authorization-code flow on the given surface.
func (srv *oauthService) LoginWithGoogle(ctx context.Context, surface service.BrowserSurface) (*usecase.LoginOutput, error) {
	if surface == nil {
		return nil, errors.New("browser surface is required for Google OAuth")
	}

	redirectTo := srv.cfg.RedirectTo()
	srv.log(ctx).Info("Starting Google OAuth login flow", slog.String("redirectTo", redirectTo))

	ctx, cancel := context.WithTimeout(ctx, srv.cfg.OAuth.HandshakeTimeout)
	defer cancel()

	output, err := srv.run(ctx, surface, redirectTo)
	if err != nil {
		srv.log(ctx).Error("Google OAuth failed", slog.Any("error", err))
		// Best-effort recovery so the user is not stranded on a
		// provider error page. Its own failure never changes the
		// outcome already decided.
		srv.recoverToLogin(surface)

		return nil, err
	}

	return output, nil
}

func (srv *oauthService) run(ctx context.Context, surface service.BrowserSurface, redirectTo string) (*usecase.LoginOutput, error) {
	// Requesting: ask the backend for the provider authorization URL.
	query := url.Values{}
	query.Set("redirectTo", redirectTo)

	resp, err := srv.api.Get(ctx, "/api/auth/google-oauth-url", query)
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok && reqErr.Kind == service.KindTimeout {
			return nil, domainerrors.ErrHandshakeTimeout
		}

		return nil, backendError(err, "HANDSHAKE_FAILED", domainerrors.ErrHandshakeFailed.Message())
	}

	envelope := struct {
		URL string `json:"url"`
	}{}
	if err := resp.Decode(&envelope); err != nil || envelope.URL == "" {
		srv.log(ctx).Error("Invalid OAuth URL response")

		return nil, domainerrors.ErrProviderURLMissing
	}

	// AwaitingRedirect: hand the surface to the provider.
	srv.log(ctx).Debug("Auth URL received, redirecting user to provider login")
	if err := surface.LoadURL(ctx, envelope.URL); err != nil {
		return nil, errors.Wrap(err, "failed to load provider authorization page")
	}

	return srv.awaitCallback(ctx, surface, redirectTo)
}

// awaitCallback folds the surface's navigation events through the one-shot
// outcome. Pre- and post-navigation observations of the same redirect both
// land here; the first terminal result returns and everything after it is
// never read, which is the latch. The context deadline is the competing
// timeout arm of the race.
func (srv *oauthService) awaitCallback(ctx context.Context, surface service.BrowserSurface, redirectTo string) (*usecase.LoginOutput, error) {
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, domainerrors.ErrHandshakeTimeout
			}

			return nil, errors.Wrap(ctx.Err(), "handshake canceled")

		case event, ok := <-surface.Events():
			if !ok {
				return nil, errors.Wrap(domainerrors.ErrHandshakeFailed, "browser surface closed")
			}

			srv.log(ctx).Debug("Navigation detected",
				slog.String("stage", string(event.Stage)),
				slog.String("url", event.URL))

			if event.Failed() {
				srv.log(ctx).Error("Navigation failed",
					slog.Int("code", event.Code),
					slog.String("description", event.Description))

				return nil, domainerrors.ErrHandshakeFailed.WithDetails(event.Description)
			}
			if event.Stage == entity.StageLoadFailed {
				// Aborted-by-redirect is routine while the provider
				// bounces through its chain.
				continue
			}

			if !srv.isCallback(event.URL) {
				continue
			}

			return srv.exchangeCode(ctx, surface, event.URL, redirectTo)
		}
	}
}

// isCallback accepts only navigations that target the configured API host
// and carry the callback path marker.
func (srv *oauthService) isCallback(target string) bool {
	host := strings.TrimPrefix(strings.TrimPrefix(srv.cfg.API.BaseURL, "https://"), "http://")

	return strings.Contains(target, host) && strings.Contains(target, callbackMarker)
}

// exchangeCode trades the authorization code for a session.
func (srv *oauthService) exchangeCode(ctx context.Context, surface service.BrowserSurface, callbackURL, redirectTo string) (*usecase.LoginOutput, error) {
	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrNoAuthorizationCode, "unparsable callback URL")
	}

	code := parsed.Query().Get("code")
	if code == "" {
		srv.log(ctx).Error("No authorization code in callback URL")

		return nil, domainerrors.ErrNoAuthorizationCode
	}
	srv.log(ctx).Info("Authorization code received, exchanging for tokens")

	resp, err := srv.api.Post(ctx, "/api/auth/google-callback", map[string]string{
		"code":        code,
		"redirectUri": redirectTo,
	})
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok && reqErr.Kind == service.KindTimeout {
			return nil, domainerrors.ErrHandshakeTimeout
		}

		return nil, backendError(err, "HANDSHAKE_FAILED", domainerrors.ErrHandshakeFailed.Message())
	}

	envelope := &sessionEnvelope{}
	if err := resp.Decode(envelope); err != nil || !envelope.Data.Session.Valid() {
		srv.log(ctx).Error("Invalid token response")

		return nil, domainerrors.ErrInvalidTokenResponse
	}

	if err := srv.store.Put(ctx, envelope.Data.Session); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	role := entity.ParseRole(envelope.Role)
	if role == "" {
		role = entity.RolePatient
	}
	srv.log(ctx).Info("User authenticated", slog.String("role", role.String()))

	// The outcome is already decided; a failed dashboard navigation only
	// degrades the view, it does not undo the login.
	dashboardURL := srv.cfg.DashboardURL(role.String())
	if err := surface.LoadURL(ctx, dashboardURL); err != nil {
		srv.log(ctx).Warn("Failed to navigate to dashboard", slog.String("url", dashboardURL), slog.Any("error", err))
	}

	return &usecase.LoginOutput{
		Raw:     resp.Body,
		Session: envelope.Data.Session,
		Role:    role,
	}, nil
}

// recoverToLogin sends the surface back to the login page after a failure.
// It runs on its own deadline because the handshake context is usually
// already expired or canceled by the time recovery runs.
func (srv *oauthService) recoverToLogin(surface service.BrowserSurface) {
	ctx, cancel := context.WithTimeout(context.Background(), recoveryTimeout)
	defer cancel()

	loginURL := srv.cfg.LoginURL()
	if err := surface.LoadURL(ctx, loginURL); err != nil {
		srv.logger.Error("Failed to navigate back to login page", slog.String("url", loginURL), slog.Any("error", err))
	}
}
