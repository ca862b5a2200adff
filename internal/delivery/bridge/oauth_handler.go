package bridge

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"healthmate/internal/delivery/bridge/response"
	"healthmate/internal/domain/entity"
	"healthmate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// commandPollTimeout bounds one long-poll for a navigation command.
const commandPollTimeout = 25 * time.Second

// OAuthHandler runs Google login attempts over the bridge. The shell owns
// the real browser window; three endpoints connect it to the handshake:
// start the flow, long-poll navigation commands, report navigation events.
// Only one attempt runs at a time.
type OAuthHandler struct {
	uc     usecase.OAuthUsecase
	logger *slog.Logger

	mu     sync.Mutex
	active *navSurface
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(uc usecase.OAuthUsecase, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// navEventRequest is the shell's report of one navigation observation.
type navEventRequest struct {
	Stage       string `json:"stage" validate:"required,oneof=will-navigate did-navigate did-fail-load"`
	URL         string `json:"url" validate:"required"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// Start runs a full Google login handshake. The request stays open until
// the flow resolves, rejects or times out.
func (h *OAuthHandler) Start(c echo.Context) error {
	surface := newNavSurface()

	h.mu.Lock()
	if h.active != nil {
		h.mu.Unlock()

		return c.JSON(http.StatusConflict, response.ErrorBody{Error: "A Google login is already in progress"})
	}
	h.active = surface
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.active = nil
		h.mu.Unlock()
	}()

	output, err := h.uc.LoginWithGoogle(c.Request().Context(), surface)
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, output.Raw)
}

// NextCommand long-polls the next navigation command for the shell. It
// responds 204 when no command arrives in time or no handshake is active.
func (h *OAuthHandler) NextCommand(c echo.Context) error {
	h.mu.Lock()
	surface := h.active
	h.mu.Unlock()

	if surface == nil {
		return c.NoContent(http.StatusNoContent)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), commandPollTimeout)
	defer cancel()

	url, ok := surface.nextCommand(ctx)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return response.OK(c, map[string]string{"url": url})
}

// ReportEvent feeds one navigation observation into the active handshake.
// Events with no active handshake are discarded: the attempt already
// settled and late events are no-ops.
func (h *OAuthHandler) ReportEvent(c echo.Context) error {
	input := &navEventRequest{}
	if err := c.Bind(input); err != nil {
		return response.BadRequest(c, "Invalid navigation event")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid navigation event")
	}

	h.mu.Lock()
	surface := h.active
	h.mu.Unlock()

	if surface == nil {
		return c.NoContent(http.StatusAccepted)
	}

	accepted := surface.offer(entity.NavigationEvent{
		Stage:       entity.NavigationStage(input.Stage),
		URL:         input.URL,
		Code:        input.Code,
		Description: input.Description,
	})
	if !accepted {
		h.logger.Debug("Dropped navigation event, handshake not consuming", slog.String("url", input.URL))
	}

	return c.NoContent(http.StatusAccepted)
}
