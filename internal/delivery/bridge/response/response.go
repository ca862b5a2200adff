// Package response defines the payload shapes the renderer receives.
package response

import (
	"net/http"

	domainerrors "healthmate/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorBody is the failure shape: every bridge operation resolves to either
// a data payload or {"error": message}, never an unhandled failure.
type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessBody wraps flag-style results such as logout.
type SuccessBody struct {
	Success bool `json:"success"`
}

// OK returns the payload as-is with status 200.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Err maps an application error to the renderer's {error} shape. AppError
// values keep their user-facing message and status; anything else degrades
// to a generic message so internals never leak across the bridge.
func Err(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.HTTPCode(), ErrorBody{Error: appErr.Message()})
	}

	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: domainerrors.ErrInternalError.Message()})
}

// BadRequest reports a malformed bridge request (binding or validation).
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}
