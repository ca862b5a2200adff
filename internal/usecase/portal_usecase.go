package usecase

import (
	"context"
	"encoding/json"

	"healthmate/internal/domain/entity"
)

// PortalUsecase groups the thin authenticated wrappers around the portal's
// data endpoints. Payloads pass through as received; the client only maps
// failure classes to stable messages.
type PortalUsecase interface {
	GetDoctors(ctx context.Context) (json.RawMessage, error)
	GetProfile(ctx context.Context) (json.RawMessage, error)
	SaveAppointment(ctx context.Context, appt *entity.Appointment) (json.RawMessage, error)
	GetPatientAppointments(ctx context.Context) (json.RawMessage, error)

	// GetDoctorAppointments lists one doctor's appointments. The doctor id
	// is required before any network call.
	GetDoctorAppointments(ctx context.Context, doctorID string) (json.RawMessage, error)

	// GetPatients lists the patients who booked with the signed-in doctor.
	GetPatients(ctx context.Context) (json.RawMessage, error)
}
