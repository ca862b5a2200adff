package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"healthmate/config"
	"healthmate/internal/domain/entity"
	"healthmate/internal/domain/service"
	"healthmate/internal/infra/persistence/cookiestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, baseURL string, timeout time.Duration) (service.APIClient, *cookiestore.Memory) {
	t.Helper()

	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.RequestTimeout = timeout

	store := cookiestore.NewMemory(time.Hour)

	return NewGateway(Params{
		Config: cfg,
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), store
}

func TestGateway_AttachesBearerFromStore(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	gateway, store := newTestGateway(t, server.URL, time.Second)
	require.NoError(t, store.Put(context.Background(), &entity.Session{AccessToken: "token-123"}))

	resp, err := gateway.Get(context.Background(), "/api/profile", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateway_NoSessionMeansUnauthenticatedRequest(t *testing.T) {
	var hadAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	gateway, _ := newTestGateway(t, server.URL, time.Second)

	_, err := gateway.Get(context.Background(), "/api/doctors", nil)
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestGateway_GetEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gateway, _ := newTestGateway(t, server.URL, time.Second)

	query := url.Values{}
	query.Set("redirectTo", "http://localhost:8888/app/dashboard")
	_, err := gateway.Get(context.Background(), "/api/auth/google-oauth-url", query)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8888/app/dashboard", gotQuery.Get("redirectTo"))
}

func TestGateway_PostSendsJSONBody(t *testing.T) {
	var gotBody map[string]string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gateway, _ := newTestGateway(t, server.URL, time.Second)

	_, err := gateway.Post(context.Background(), "/api/login", map[string]string{
		"email":    "user@example.com",
		"password": "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "user@example.com", gotBody["email"])
}

func TestGateway_ClassifiesStatusCodes(t *testing.T) {
	testCases := []struct {
		status int
		kind   service.FailureKind
	}{
		{http.StatusUnauthorized, service.KindUnauthorized},
		{http.StatusForbidden, service.KindForbidden},
		{http.StatusNotFound, service.KindNotFound},
		{http.StatusConflict, service.KindConflict},
		{http.StatusTooManyRequests, service.KindRateLimited},
		{http.StatusInternalServerError, service.KindServerError},
		{http.StatusBadRequest, service.KindServerError},
	}

	for _, tc := range testCases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			gateway, _ := newTestGateway(t, server.URL, time.Second)

			_, err := gateway.Get(context.Background(), "/api/profile", nil)
			reqErr, ok := service.AsRequestError(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, reqErr.Kind)
			assert.Equal(t, tc.status, reqErr.StatusCode)
		})
	}
}

func TestGateway_PreservesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"This time slot is already booked"}`))
	}))
	defer server.Close()

	gateway, _ := newTestGateway(t, server.URL, time.Second)

	_, err := gateway.Post(context.Background(), "/api/appointments", map[string]string{})
	reqErr, ok := service.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, "This time slot is already booked", reqErr.ServerMsg)
	assert.Equal(t, "This time slot is already booked", reqErr.Message())
}

func TestGateway_UnreachableServerIsNoResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	gateway, _ := newTestGateway(t, server.URL, time.Second)

	_, err := gateway.Get(context.Background(), "/api/profile", nil)
	reqErr, ok := service.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, service.KindNoResponse, reqErr.Kind)
	assert.Zero(t, reqErr.StatusCode)
	assert.Equal(t, "Could not reach the server", reqErr.Message())
}

func TestGateway_DeadlineIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	gateway, _ := newTestGateway(t, server.URL, 20*time.Millisecond)

	_, err := gateway.Get(context.Background(), "/api/profile", nil)
	reqErr, ok := service.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, service.KindTimeout, reqErr.Kind)
	assert.Equal(t, "The request timed out", reqErr.Message())
}

// A 401 and an unreachable server must stay distinguishable for callers.
func TestGateway_UnauthorizedAndNoResponseStayDistinct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	gateway, _ := newTestGateway(t, server.URL, time.Second)

	_, err := gateway.Get(context.Background(), "/api/user-role", nil)
	unauthErr, ok := service.AsRequestError(err)
	require.True(t, ok)

	server.Close()
	_, err = gateway.Get(context.Background(), "/api/user-role", nil)
	downErr, ok := service.AsRequestError(err)
	require.True(t, ok)

	assert.NotEqual(t, unauthErr.Kind, downErr.Kind)
}
