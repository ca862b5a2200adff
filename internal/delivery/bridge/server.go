// Package bridge runs the local server the renderer process talks to. It is
// the desktop shell's IPC surface expressed as loopback HTTP.
package bridge

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"healthmate/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

// ServerParams bundles the bridge server dependencies, injected by Fx.
type ServerParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	RouterParams RouterParams
}

// Server is the loopback bridge server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer builds the echo server and registers the bridge routes.
func NewServer(params ServerParams) *Server {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Use(echomiddleware.Recover())
	echoServer.Validator = newRequestValidator()

	router := NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

	server := &Server{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: server.stop,
	})

	return server
}

// Serve binds the loopback interface only: the bridge is for the local
// renderer, not the network.
func (s *Server) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("127.0.0.1", strconv.Itoa(s.cfg.Bridge.Port))
	s.logger.Info("Starting bridge server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve bridge")
	}

	return nil
}

func (s *Server) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down bridge server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
