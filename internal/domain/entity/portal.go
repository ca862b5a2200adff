package entity

// Appointment is a booking request a patient submits for a doctor's slot.
type Appointment struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason,omitempty"`
}

// Complete reports whether the booking carries every required field.
func (a *Appointment) Complete() bool {
	return a != nil && a.DoctorID != "" && a.Date != "" && a.Time != ""
}
