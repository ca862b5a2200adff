// Package handler contains the bridge handlers the renderer calls.
package handler

import (
	"log/slog"

	"healthmate/internal/delivery/bridge/response"
	"healthmate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler holds dependencies for the session lifecycle endpoints.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Login handles the password login request.
func (h *AuthHandler) Login(c echo.Context) error {
	input := &usecase.LoginInput{}
	if err := c.Bind(input); err != nil {
		return response.BadRequest(c, "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return response.Err(c, err)
	}

	// The backend payload passes through so the renderer sees the same
	// shape the API documents.
	return response.OK(c, output.Raw)
}

// Signup handles the account creation request.
func (h *AuthHandler) Signup(c echo.Context) error {
	input := &usecase.SignupInput{}
	if err := c.Bind(input); err != nil {
		return response.BadRequest(c, "Invalid signup input")
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, output)
}

// RefreshToken handles the token refresh request.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	session, err := h.uc.RefreshToken(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, map[string]any{"data": session})
}

// Logout clears the local session. The renderer always transitions to the
// logged-out view: a store failure is logged, not surfaced as a blocker.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		h.logger.Error("Logout failed to clear session cookie", slog.Any("error", err))
	}

	return response.OK(c, response.SuccessBody{Success: true})
}

// GetUserRole returns the authenticated user's role.
func (h *AuthHandler) GetUserRole(c echo.Context) error {
	role, err := h.uc.GetUserRole(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, map[string]string{"role": role.String()})
}

// GetSession returns the stored session record.
func (h *AuthHandler) GetSession(c echo.Context) error {
	session, err := h.uc.GetSession(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, map[string]any{"data": session})
}

// SessionInfo returns display-only claims from the stored access token.
func (h *AuthHandler) SessionInfo(c echo.Context) error {
	info, err := h.uc.SessionInfo(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, map[string]any{"data": info})
}

// HealthCheck reports bridge liveness to the shell.
func HealthCheck(c echo.Context) error {
	return response.OK(c, response.SuccessBody{Success: true})
}
