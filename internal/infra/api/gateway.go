// Package api contains the HTTP gateway to the remote backend. It is the
// single point of egress: every outbound call is authenticated from the
// credential slot and every failure is classified the same way.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"healthmate/config"
	deliverycontext "healthmate/internal/delivery/context"
	"healthmate/internal/domain/repository"
	"healthmate/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Gateway implements service.APIClient over net/http.
type Gateway struct {
	baseURL string
	client  *http.Client
	store   repository.CredentialStore
	logger  *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Store  repository.CredentialStore
	Logger *slog.Logger
}

// NewGateway is the constructor for Gateway.
func NewGateway(params Params) service.APIClient {
	return &Gateway{
		baseURL: params.Config.API.BaseURL,
		client: &http.Client{
			Timeout: params.Config.API.RequestTimeout,
		},
		store:  params.Store,
		logger: params.Logger,
	}
}

func (g *Gateway) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, g.logger)
}

// Get issues an authenticated GET request.
func (g *Gateway) Get(ctx context.Context, path string, query url.Values) (*service.APIResponse, error) {
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &service.RequestError{Kind: service.KindSetup, Err: err}
	}

	return g.do(ctx, req)
}

// Post issues an authenticated POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body any) (*service.APIResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &service.RequestError{Kind: service.KindSetup, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &service.RequestError{Kind: service.KindSetup, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return g.do(ctx, req)
}

func (g *Gateway) do(ctx context.Context, req *http.Request) (*service.APIResponse, error) {
	g.attachBearer(ctx, req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.classifyTransport(ctx, req, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &service.RequestError{Kind: service.KindNoResponse, Err: err}
	}

	g.log(ctx).Debug("API response",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &service.APIResponse{StatusCode: resp.StatusCode, Body: body}, nil
	}

	reqErr := &service.RequestError{
		Kind:       classifyStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		ServerMsg:  serverMessage(body),
	}
	g.log(ctx).Error("API error response",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("message", reqErr.ServerMsg))

	return nil, reqErr
}

// attachBearer re-reads the credential slot on every call so refreshes and
// logouts take effect immediately. A missing or malformed record downgrades
// the request to unauthenticated; authorization is enforced server-side.
func (g *Gateway) attachBearer(ctx context.Context, req *http.Request) {
	session, err := g.store.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			g.log(ctx).Debug("No session cookie found, request will be unauthenticated")
		} else {
			g.log(ctx).Warn("Could not read session cookie, request will be unauthenticated", slog.Any("error", err))
		}

		return
	}

	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
}

func (g *Gateway) classifyTransport(ctx context.Context, req *http.Request, err error) *service.RequestError {
	kind := service.KindNoResponse

	var urlErr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = service.KindTimeout
	case errors.As(err, &urlErr) && urlErr.Timeout():
		kind = service.KindTimeout
	case errors.As(err, &urlErr):
		// The request left the client but nothing came back.
		kind = service.KindNoResponse
	default:
		kind = service.KindSetup
	}

	g.log(ctx).Error("API transport failure",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("kind", string(kind)),
		slog.Any("error", err))

	return &service.RequestError{Kind: kind, Err: err}
}

func classifyStatus(status int) service.FailureKind {
	switch status {
	case http.StatusUnauthorized:
		return service.KindUnauthorized
	case http.StatusForbidden:
		return service.KindForbidden
	case http.StatusNotFound:
		return service.KindNotFound
	case http.StatusConflict:
		return service.KindConflict
	case http.StatusTooManyRequests:
		return service.KindRateLimited
	default:
		return service.KindServerError
	}
}

// serverMessage extracts the backend's message field from an error body.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	envelope := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	return strings.TrimSpace(envelope.Message)
}
