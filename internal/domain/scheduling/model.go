package scheduling

import "github.com/google/uuid"

// Appointment maps to the appointment table. It is not linked to a customer.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientName     string    `db:"patient_name" json:"patient_name"`
	AppointmentDate string    `db:"appointment_date" json:"appointment_date"`
}

// Dashboard is the start-page summary.
type Dashboard struct {
	Upcoming      []*Appointment `json:"upcoming"`
	TotalPatients int            `json:"total_patients"`
}
