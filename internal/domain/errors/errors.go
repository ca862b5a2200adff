// Package errors defines the application error taxonomy. Every failure a
// caller can observe maps to one of these values so user-facing messages
// stay stable across the codebase.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code associated with the failure
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. Messages are part of the caller contract and
// must not be reworded without updating the renderer.
var (
	// Credential input errors, raised before any network call.
	ErrMissingCredentials = NewBaseError(
		http.StatusBadRequest,
		"MISSING_CREDENTIALS",
		"Email and password are required",
		"",
	)

	ErrMissingSignupFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_SIGNUP_FIELDS",
		"Email, password, full name, and role are required",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		`Role must be either "patient" or "doctor"`,
		"",
	)

	// Login errors.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Too many login attempts, please try again later",
		"",
	)

	// ErrMalformedSession covers a 2xx response that violates the expected
	// shape. The transport call succeeded; the payload did not.
	ErrMalformedSession = NewBaseError(
		http.StatusBadGateway,
		"MALFORMED_SESSION",
		"Invalid session data received from server",
		"",
	)

	ErrMalformedResponse = NewBaseError(
		http.StatusBadGateway,
		"MALFORMED_RESPONSE",
		"Invalid response from server",
		"",
	)

	// Signup errors.
	ErrEmailRegistered = NewBaseError(
		http.StatusConflict,
		"EMAIL_REGISTERED",
		"This email is already registered",
		"",
	)

	ErrInvalidSignup = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SIGNUP",
		"Invalid signup information. Please check your details.",
		"",
	)

	// Session record errors.
	ErrNoSession = NewBaseError(
		http.StatusUnauthorized,
		"NO_SESSION",
		"No session found",
		"",
	)

	ErrNoAccessToken = NewBaseError(
		http.StatusUnauthorized,
		"NO_ACCESS_TOKEN",
		"No access token found",
		"",
	)

	ErrInvalidSessionData = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_SESSION_DATA",
		"Invalid session data",
		"",
	)

	ErrRefreshExpired = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_EXPIRED",
		"Refresh token is invalid or expired. Please login again.",
		"",
	)

	ErrRefreshFailed = NewBaseError(
		http.StatusBadGateway,
		"REFRESH_FAILED",
		"Failed to refresh token",
		"",
	)

	ErrAuthExpired = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_EXPIRED",
		"Authentication expired. Please login again.",
		"",
	)

	ErrRoleNotFound = NewBaseError(
		http.StatusNotFound,
		"ROLE_NOT_FOUND",
		"User role not found",
		"",
	)

	// OAuth handshake errors.
	ErrProviderURLMissing = NewBaseError(
		http.StatusBadGateway,
		"PROVIDER_URL_MISSING",
		"Failed to get Google OAuth URL",
		"",
	)

	ErrNoAuthorizationCode = NewBaseError(
		http.StatusBadRequest,
		"NO_AUTHORIZATION_CODE",
		"No authorization code received",
		"",
	)

	ErrInvalidTokenResponse = NewBaseError(
		http.StatusBadGateway,
		"INVALID_TOKEN_RESPONSE",
		"Invalid token response",
		"",
	)

	ErrHandshakeTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"HANDSHAKE_TIMEOUT",
		"Google OAuth timeout after 2 minutes",
		"",
	)

	ErrHandshakeFailed = NewBaseError(
		http.StatusBadGateway,
		"HANDSHAKE_FAILED",
		"Google OAuth login failed",
		"",
	)

	// Portal errors.
	ErrDoctorIDRequired = NewBaseError(
		http.StatusBadRequest,
		"MISSING_DOCTOR_ID",
		"Doctor ID is required",
		"",
	)

	ErrPatientsForbidden = NewBaseError(
		http.StatusForbidden,
		"PATIENTS_FORBIDDEN",
		"Not authorized to view patients",
		"",
	)

	ErrSlotTaken = NewBaseError(
		http.StatusConflict,
		"SLOT_TAKEN",
		"This time slot is already booked",
		"",
	)

	ErrMissingAppointmentFields = NewBaseError(
		http.StatusBadRequest,
		"MISSING_APPOINTMENT_FIELDS",
		"Doctor, date, and time are required",
		"",
	)

	// General errors.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong",
		"",
	)
)
