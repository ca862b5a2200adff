package bridge

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthmate/internal/domain/entity"
	"healthmate/internal/domain/service"
	"healthmate/internal/mocks"
	"healthmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBridgeTestContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = newRequestValidator()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestOAuthHandler(t *testing.T) (*OAuthHandler, *mocks.OAuthUsecase) {
	t.Helper()

	uc := mocks.NewOAuthUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewOAuthHandler(uc, logger), uc
}

func TestOAuthStart_ReturnsLoginPayload(t *testing.T) {
	h, uc := newTestOAuthHandler(t)

	raw := `{"data":{"user":{"id":"user-1"}},"role":"patient"}`
	uc.On("LoginWithGoogle", mock.Anything, mock.Anything).
		Return(&usecase.LoginOutput{Raw: []byte(raw), Role: entity.RolePatient}, nil)

	c, rec := newBridgeTestContext(t, http.MethodPost, "")
	require.NoError(t, h.Start(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, raw, rec.Body.String())
}

func TestOAuthStart_SingleAttemptAtATime(t *testing.T) {
	h, uc := newTestOAuthHandler(t)

	started := make(chan struct{})
	release := make(chan struct{})
	uc.On("LoginWithGoogle", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&usecase.LoginOutput{Raw: []byte(`{}`)}, nil)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)

		c, _ := newBridgeTestContext(t, http.MethodPost, "")
		assert.NoError(t, h.Start(c))
	}()
	<-started

	c, rec := newBridgeTestContext(t, http.MethodPost, "")
	require.NoError(t, h.Start(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"A Google login is already in progress"}`, rec.Body.String())

	close(release)
	<-firstDone

	// The slot frees once the attempt settles.
	h.mu.Lock()
	assert.Nil(t, h.active)
	h.mu.Unlock()
}

func TestNextCommand_NoActiveHandshake(t *testing.T) {
	h, _ := newTestOAuthHandler(t)

	c, rec := newBridgeTestContext(t, http.MethodGet, "")
	require.NoError(t, h.NextCommand(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNextCommand_DeliversQueuedCommand(t *testing.T) {
	h, _ := newTestOAuthHandler(t)

	surface := newNavSurface()
	h.active = surface
	require.NoError(t, surface.LoadURL(t.Context(), "https://accounts.google.com/o/oauth2/auth"))

	c, rec := newBridgeTestContext(t, http.MethodGet, "")
	require.NoError(t, h.NextCommand(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://accounts.google.com/o/oauth2/auth"}`, rec.Body.String())
}

func TestReportEvent_FeedsActiveHandshake(t *testing.T) {
	h, _ := newTestOAuthHandler(t)

	surface := newNavSurface()
	h.active = surface

	body := `{"stage":"did-fail-load","url":"https://accounts.google.com","code":-3,"description":"aborted"}`
	c, rec := newBridgeTestContext(t, http.MethodPost, body)
	require.NoError(t, h.ReportEvent(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case event := <-surface.Events():
		assert.Equal(t, entity.StageLoadFailed, event.Stage)
		assert.Equal(t, -3, event.Code)
		assert.False(t, event.Failed())
	case <-time.After(time.Second):
		t.Fatal("event was not delivered to the handshake")
	}
}

func TestReportEvent_LateEventsAreDiscarded(t *testing.T) {
	h, _ := newTestOAuthHandler(t)

	body := `{"stage":"did-navigate","url":"https://accounts.google.com"}`
	c, rec := newBridgeTestContext(t, http.MethodPost, body)
	require.NoError(t, h.ReportEvent(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestReportEvent_RejectsUnknownStage(t *testing.T) {
	h, _ := newTestOAuthHandler(t)

	body := `{"stage":"page-loaded","url":"https://accounts.google.com"}`
	c, rec := newBridgeTestContext(t, http.MethodPost, body)
	require.NoError(t, h.ReportEvent(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid navigation event"}`, rec.Body.String())
}

// The surface handed to the usecase is the same one the poll and report
// endpoints drive.
func TestOAuthStart_WiresSurfaceToEndpoints(t *testing.T) {
	h, uc := newTestOAuthHandler(t)

	var got service.BrowserSurface
	uc.On("LoginWithGoogle", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(service.BrowserSurface)
		}).
		Return(&usecase.LoginOutput{Raw: []byte(`{}`)}, nil)

	c, _ := newBridgeTestContext(t, http.MethodPost, "")
	require.NoError(t, h.Start(c))
	assert.NotNil(t, got)
}
