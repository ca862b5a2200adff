// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	deliverycontext "healthmate/internal/delivery/context"
	"healthmate/internal/domain/entity"
	domainerrors "healthmate/internal/domain/errors"
	"healthmate/internal/domain/repository"
	"healthmate/internal/domain/service"
	"healthmate/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	api    service.APIClient
	store  repository.CredentialStore
	logger *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	API    service.APIClient
	Store  repository.CredentialStore
	Logger *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		api:    params.API,
		store:  params.Store,
		logger: params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// sessionEnvelope is the backend's shape for login and OAuth exchanges:
// {data: {user: {...}, session: {...}}, role: "patient"}.
type sessionEnvelope struct {
	Data struct {
		User    json.RawMessage `json:"user"`
		Session *entity.Session `json:"session"`
	} `json:"data"`
	Role string `json:"role"`
}

// Login exchanges credentials for a session and stores it.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		srv.log(ctx).Error("Missing required login parameters")

		return nil, domainerrors.ErrMissingCredentials
	}
	srv.log(ctx).Info("Login attempt initiated", slog.String("email", input.Email))

	resp, err := srv.api.Post(ctx, "/api/login", map[string]string{
		"email":    input.Email,
		"password": input.Password,
	})
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok {
			switch reqErr.Kind {
			case service.KindUnauthorized:
				return nil, domainerrors.ErrInvalidCredentials
			case service.KindRateLimited:
				return nil, domainerrors.ErrRateLimited
			}
		}

		return nil, backendError(err, "LOGIN_FAILED", "Authentication failed")
	}

	envelope := &sessionEnvelope{}
	if err := resp.Decode(envelope); err != nil || !envelope.Data.Session.Valid() {
		srv.log(ctx).Error("Invalid session data received from API")

		return nil, domainerrors.ErrMalformedSession
	}

	if err := srv.store.Put(ctx, envelope.Data.Session); err != nil {
		if errors.Is(err, repository.ErrInvalidSessionData) {
			return nil, domainerrors.ErrMalformedSession
		}

		return nil, errors.Wrap(err, "failed to store session")
	}

	role := entity.ParseRole(envelope.Role)
	srv.log(ctx).Info("User logged in successfully", slog.String("role", role.String()))

	return &usecase.LoginOutput{
		Raw:     resp.Body,
		Session: envelope.Data.Session,
		Role:    role,
	}, nil
}

// Signup creates a new account. Validation happens before any network call.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	if input == nil || input.Email == "" || input.Password == "" || input.FullName == "" || input.Role == "" {
		srv.log(ctx).Error("Missing required signup parameters")

		return nil, domainerrors.ErrMissingSignupFields
	}

	role := entity.ParseRole(input.Role)
	if !role.SelfRegisterable() {
		srv.log(ctx).Error("Invalid role provided", slog.String("role", input.Role))

		return nil, domainerrors.ErrInvalidRole
	}
	srv.log(ctx).Info("Signup attempt initiated", slog.String("role", role.String()))

	resp, err := srv.api.Post(ctx, "/api/signup", map[string]string{
		"email":       input.Email,
		"password":    input.Password,
		"fullName":    input.FullName,
		"phoneNumber": input.PhoneNumber,
		"gender":      input.Gender,
		"role":        role.String(),
	})
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok {
			switch {
			case reqErr.Kind == service.KindConflict:
				return nil, domainerrors.ErrEmailRegistered
			case reqErr.StatusCode == http.StatusBadRequest:
				return nil, domainerrors.ErrInvalidSignup
			}
		}

		return nil, backendError(err, "SIGNUP_FAILED", "Registration failed")
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := resp.Decode(&envelope); err != nil || len(envelope.Data) == 0 {
		srv.log(ctx).Error("Signup response missing data")

		return nil, domainerrors.ErrMalformedResponse
	}

	srv.log(ctx).Info("User registered successfully", slog.String("email", input.Email), slog.String("role", role.String()))

	return &usecase.SignupOutput{Data: envelope.Data}, nil
}

// RefreshToken exchanges the stored refresh token for a new session.
func (srv *authService) RefreshToken(ctx context.Context) (*entity.Session, error) {
	srv.log(ctx).Info("Attempting to refresh authentication token")

	current, err := srv.store.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Error("No session cookie found")

			return nil, domainerrors.ErrNoSession
		}

		return nil, domainerrors.ErrInvalidSessionData
	}
	if current.RefreshToken == "" {
		srv.log(ctx).Error("Session cookie lacks a refresh token")

		return nil, domainerrors.ErrInvalidSessionData
	}

	resp, err := srv.api.Post(ctx, "/api/refresh-token", map[string]string{
		"refresh_token": current.RefreshToken,
	})
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok && reqErr.Kind == service.KindUnauthorized {
			return nil, domainerrors.ErrRefreshExpired
		}

		return nil, backendError(err, "REFRESH_FAILED", "Failed to refresh token")
	}

	envelope := struct {
		Data *entity.Session `json:"data"`
	}{}
	if err := resp.Decode(&envelope); err != nil || !envelope.Data.Valid() {
		srv.log(ctx).Error("Invalid response from refresh token API")

		return nil, domainerrors.ErrRefreshFailed
	}

	if err := srv.store.Put(ctx, envelope.Data); err != nil {
		return nil, errors.Wrap(err, "failed to store refreshed session")
	}
	srv.log(ctx).Info("Token refresh successful")

	return envelope.Data, nil
}

// Logout clears the local session record. It is idempotent: clearing an
// empty slot succeeds.
func (srv *authService) Logout(ctx context.Context) error {
	if err := srv.store.Remove(ctx); err != nil {
		srv.log(ctx).Error("Failed to remove session cookie", slog.Any("error", err))

		return errors.Wrap(err, "failed to remove session cookie")
	}
	srv.log(ctx).Info("User logged out, session cookie removed")

	return nil
}

// GetUserRole fetches the authenticated user's role.
func (srv *authService) GetUserRole(ctx context.Context) (entity.Role, error) {
	srv.log(ctx).Debug("Fetching user role")

	if _, err := srv.store.Get(ctx); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Error("No access token found in cookie store")

			return "", domainerrors.ErrNoAccessToken
		}

		return "", domainerrors.ErrInvalidSessionData
	}

	resp, err := srv.api.Get(ctx, "/api/user-role", nil)
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok && reqErr.Kind == service.KindUnauthorized {
			return "", domainerrors.ErrAuthExpired
		}

		return "", backendError(err, "ROLE_FETCH_FAILED", "Failed to retrieve user role")
	}

	envelope := struct {
		Role string `json:"role"`
	}{}
	if err := resp.Decode(&envelope); err != nil || envelope.Role == "" {
		srv.log(ctx).Error("User role not found in API response")

		return "", domainerrors.ErrRoleNotFound
	}

	role := entity.ParseRole(envelope.Role)
	if !role.IsKnown() {
		// Soft validation: the renderer must not break on a role this
		// client version does not know about.
		srv.log(ctx).Warn("Unexpected role value received", slog.String("role", role.String()))
	}
	srv.log(ctx).Info("User role retrieved", slog.String("role", role.String()))

	return role, nil
}

// GetSession returns the stored session record.
func (srv *authService) GetSession(ctx context.Context) (*entity.Session, error) {
	session, err := srv.store.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrNoSession
		}

		return nil, domainerrors.ErrInvalidSessionData
	}

	return session, nil
}

// SessionInfo inspects the stored access token's claims for display. The
// token is not verified here; the backend is the authority. Expiry shown
// here never triggers a refresh: a 401 is the only refresh signal.
func (srv *authService) SessionInfo(ctx context.Context) (*entity.SessionInfo, error) {
	session, err := srv.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	info := &entity.SessionInfo{}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.AccessToken, claims); err != nil {
		// Opaque tokens are fine; there is just nothing to show.
		srv.log(ctx).Debug("Access token is not a parsable JWT", slog.Any("error", err))

		return info, nil
	}

	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}

// backendError converts a gateway failure the caller has not specifically
// mapped into an AppError. The server's message wins when present; a
// transport failure keeps its transport-level message so "server said no"
// and "server unreachable" never collapse into one; anything else falls
// back to the operation's generic message.
func backendError(err error, errorCode, fallback string) error {
	reqErr, ok := service.AsRequestError(err)
	if !ok {
		return domainerrors.NewBaseError(http.StatusInternalServerError, errorCode, fallback, err.Error())
	}

	status := reqErr.StatusCode
	if status == 0 {
		status = http.StatusServiceUnavailable
	}

	switch {
	case reqErr.ServerMsg != "":
		return domainerrors.NewBaseError(status, errorCode, reqErr.ServerMsg, "")
	case reqErr.Kind == service.KindTimeout,
		reqErr.Kind == service.KindNoResponse,
		reqErr.Kind == service.KindSetup:
		return domainerrors.NewBaseError(status, errorCode, reqErr.Message(), "")
	default:
		return domainerrors.NewBaseError(status, errorCode, fallback, reqErr.Message())
	}
}
