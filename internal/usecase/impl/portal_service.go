package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	deliverycontext "healthmate/internal/delivery/context"
	"healthmate/internal/domain/entity"
	domainerrors "healthmate/internal/domain/errors"
	"healthmate/internal/domain/service"
	"healthmate/internal/usecase"

	"go.uber.org/fx"
)

// portalService implements the PortalUsecase interface. Each operation is a
// thin authenticated wrapper: the gateway attaches the bearer token, the
// wrapper maps failure classes to stable messages and passes payloads
// through untouched.
type portalService struct {
	api    service.APIClient
	logger *slog.Logger
}

// PortalServiceParams holds dependencies for portalService, injected by Fx.
type PortalServiceParams struct {
	fx.In

	API    service.APIClient
	Logger *slog.Logger
}

// NewPortalService is the constructor for portalService.
func NewPortalService(params PortalServiceParams) usecase.PortalUsecase {
	return &portalService{
		api:    params.API,
		logger: params.Logger,
	}
}

func (srv *portalService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDoctors lists the doctors available for booking.
func (srv *portalService) GetDoctors(ctx context.Context) (json.RawMessage, error) {
	return srv.fetch(ctx, "/api/doctors", "DOCTORS_FETCH_FAILED", "Failed to retrieve doctors")
}

// GetProfile returns the authenticated user's profile.
func (srv *portalService) GetProfile(ctx context.Context) (json.RawMessage, error) {
	return srv.fetch(ctx, "/api/get-profile", "PROFILE_FETCH_FAILED", "Failed to retrieve profile")
}

// GetPatientAppointments lists the signed-in patient's appointments.
func (srv *portalService) GetPatientAppointments(ctx context.Context) (json.RawMessage, error) {
	return srv.fetch(ctx, "/api/patient/appointments", "APPOINTMENTS_FETCH_FAILED", "Failed to retrieve appointments")
}

// GetDoctorAppointments lists one doctor's appointments.
func (srv *portalService) GetDoctorAppointments(ctx context.Context, doctorID string) (json.RawMessage, error) {
	if doctorID == "" {
		srv.log(ctx).Error("Doctor ID is required to fetch appointments")

		return nil, domainerrors.ErrDoctorIDRequired
	}

	return srv.fetch(ctx, "/api/doctor/appointments/"+url.PathEscape(doctorID),
		"APPOINTMENTS_FETCH_FAILED", "Failed to retrieve appointments")
}

// GetPatients lists the patients who booked with the signed-in doctor.
func (srv *portalService) GetPatients(ctx context.Context) (json.RawMessage, error) {
	resp, err := srv.api.Get(ctx, "/api/doctor/patients", nil)
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok {
			switch reqErr.Kind {
			case service.KindUnauthorized:
				return nil, domainerrors.ErrAuthExpired
			case service.KindForbidden:
				// Patient lists are doctor-only data.
				return nil, domainerrors.ErrPatientsForbidden
			}
		}

		return nil, backendError(err, "PATIENTS_FETCH_FAILED", "Failed to retrieve patients")
	}

	return resp.Body, nil
}

// SaveAppointment books a slot with a doctor. A conflict means the slot was
// taken between display and booking.
func (srv *portalService) SaveAppointment(ctx context.Context, appt *entity.Appointment) (json.RawMessage, error) {
	if !appt.Complete() {
		srv.log(ctx).Error("Missing required appointment parameters")

		return nil, domainerrors.ErrMissingAppointmentFields
	}
	srv.log(ctx).Info("Booking appointment", slog.String("doctorId", appt.DoctorID), slog.String("date", appt.Date))

	resp, err := srv.api.Post(ctx, "/api/patient/appointments", appt)
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok {
			switch reqErr.Kind {
			case service.KindConflict:
				return nil, domainerrors.ErrSlotTaken
			case service.KindUnauthorized:
				return nil, domainerrors.ErrAuthExpired
			}
		}

		return nil, backendError(err, "APPOINTMENT_SAVE_FAILED", "Failed to book appointment")
	}

	return resp.Body, nil
}

func (srv *portalService) fetch(ctx context.Context, path, errorCode, fallback string) (json.RawMessage, error) {
	resp, err := srv.api.Get(ctx, path, nil)
	if err != nil {
		if reqErr, ok := service.AsRequestError(err); ok {
			switch {
			case reqErr.Kind == service.KindUnauthorized:
				return nil, domainerrors.ErrAuthExpired
			case reqErr.StatusCode == http.StatusNotFound:
				return nil, domainerrors.NewBaseError(http.StatusNotFound, errorCode, fallback, reqErr.Message())
			}
		}

		return nil, backendError(err, errorCode, fallback)
	}

	return resp.Body, nil
}
