package handler

import (
	"log/slog"

	"healthmate/internal/delivery/bridge/response"
	"healthmate/internal/domain/entity"
	"healthmate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PortalHandler holds dependencies for the portal data endpoints.
type PortalHandler struct {
	uc     usecase.PortalUsecase
	logger *slog.Logger
}

// NewPortalHandler is the constructor for PortalHandler, injected by Fx.
func NewPortalHandler(uc usecase.PortalUsecase, logger *slog.Logger) *PortalHandler {
	return &PortalHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetDoctors lists doctors available for booking.
func (h *PortalHandler) GetDoctors(c echo.Context) error {
	data, err := h.uc.GetDoctors(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, data)
}

// GetProfile returns the signed-in user's profile.
func (h *PortalHandler) GetProfile(c echo.Context) error {
	data, err := h.uc.GetProfile(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, data)
}

// GetPatientAppointments lists the signed-in patient's appointments.
func (h *PortalHandler) GetPatientAppointments(c echo.Context) error {
	data, err := h.uc.GetPatientAppointments(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, data)
}

// GetDoctorAppointments lists one doctor's appointments.
func (h *PortalHandler) GetDoctorAppointments(c echo.Context) error {
	data, err := h.uc.GetDoctorAppointments(c.Request().Context(), c.Param("doctorId"))
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, data)
}

// GetPatients lists the patients who booked with the signed-in doctor.
func (h *PortalHandler) GetPatients(c echo.Context) error {
	data, err := h.uc.GetPatients(c.Request().Context())
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, data)
}

// SaveAppointment books a slot with a doctor.
func (h *PortalHandler) SaveAppointment(c echo.Context) error {
	appt := &entity.Appointment{}
	if err := c.Bind(appt); err != nil {
		return response.BadRequest(c, "Invalid appointment input")
	}

	data, err := h.uc.SaveAppointment(c.Request().Context(), appt)
	if err != nil {
		return response.Err(c, err)
	}

	return response.OK(c, data)
}
