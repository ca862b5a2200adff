package bridge

import (
	"healthmate/internal/delivery/bridge/handler"
	"healthmate/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams bundles the handlers the router registers.
type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	PortalHandler       *handler.PortalHandler
	OAuthHandler        *OAuthHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler   *handler.AuthHandler
	portalHandler *handler.PortalHandler
	oauthHandler  *OAuthHandler
	requestID     *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:   params.AuthHandler,
		portalHandler: params.PortalHandler,
		oauthHandler:  params.OAuthHandler,
		requestID:     params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up the caller-facing surface the renderer uses.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestID.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/refresh-token", r.authHandler.RefreshToken)
		authGroup.GET("/role", r.authHandler.GetUserRole)
		authGroup.GET("/session", r.authHandler.GetSession)
		authGroup.GET("/session/info", r.authHandler.SessionInfo)

		authGroup.POST("/google", r.oauthHandler.Start)
		authGroup.GET("/google/commands", r.oauthHandler.NextCommand)
		authGroup.POST("/google/events", r.oauthHandler.ReportEvent)
	}

	portalGroup := e.Group("/portal")
	{
		portalGroup.GET("/doctors", r.portalHandler.GetDoctors)
		portalGroup.GET("/profile", r.portalHandler.GetProfile)
		portalGroup.GET("/patients", r.portalHandler.GetPatients)
		portalGroup.GET("/appointments/patient", r.portalHandler.GetPatientAppointments)
		portalGroup.GET("/appointments/doctor/:doctorId", r.portalHandler.GetDoctorAppointments)
		portalGroup.POST("/appointments", r.portalHandler.SaveAppointment)
	}
}
