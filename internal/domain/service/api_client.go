// Package service defines interfaces for infrastructure services consumed
// by the application layer.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

// FailureKind classifies how an outbound API call failed. Server-classified
// and transport-classified failures are never merged: a 401 and an
// unreachable server are distinct outcomes with distinct kinds.
type FailureKind string

const (
	// KindUnauthorized maps 401: token invalid or expired.
	KindUnauthorized FailureKind = "unauthorized"
	// KindForbidden maps 403: authenticated but not permitted.
	KindForbidden FailureKind = "forbidden"
	// KindNotFound maps 404.
	KindNotFound FailureKind = "not_found"
	// KindConflict maps 409: duplicate resource.
	KindConflict FailureKind = "conflict"
	// KindRateLimited maps 429.
	KindRateLimited FailureKind = "rate_limited"
	// KindServerError maps any other non-2xx status.
	KindServerError FailureKind = "server_error"
	// KindTimeout means the request exceeded the configured deadline.
	KindTimeout FailureKind = "timeout"
	// KindNoResponse means the request was sent but no response arrived.
	KindNoResponse FailureKind = "no_response"
	// KindSetup means the request could not be constructed or sent at all.
	KindSetup FailureKind = "setup"
)

// RequestError is the classified failure of one outbound call.
type RequestError struct {
	Kind       FailureKind
	StatusCode int    // zero when no response was received
	ServerMsg  string // message field from the response body, if any
	Err        error  // underlying transport error, if any
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.ServerMsg != "" {
		return fmt.Sprintf("api request failed (%s): %s", e.Kind, e.ServerMsg)
	}
	if e.Err != nil {
		return fmt.Sprintf("api request failed (%s): %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("api request failed (%s): status %d", e.Kind, e.StatusCode)
}

// Unwrap exposes the underlying transport error.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Message returns the server-provided message when present, otherwise a
// generic transport-level fallback.
func (e *RequestError) Message() string {
	if e.ServerMsg != "" {
		return e.ServerMsg
	}

	switch e.Kind {
	case KindTimeout:
		return "The request timed out"
	case KindNoResponse:
		return "Could not reach the server"
	case KindSetup:
		return "The request could not be sent"
	default:
		return fmt.Sprintf("Request failed with status %d", e.StatusCode)
	}
}

// AsRequestError extracts a RequestError from an error chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}

	return nil, false
}

// APIResponse is a successful (2xx) response body, returned as-is.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "decode response body")
	}

	return nil
}

// APIClient is the single point of egress to the remote API. Implementations
// attach the stored bearer token to every call and classify failures into
// RequestError values.
type APIClient interface {
	Get(ctx context.Context, path string, query url.Values) (*APIResponse, error)
	Post(ctx context.Context, path string, body any) (*APIResponse, error)
}
