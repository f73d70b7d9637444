package scheduling

import "context"

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	// ListUpcoming returns at most limit appointments by ascending date.
	ListUpcoming(ctx context.Context, limit int) ([]*Appointment, error)
	CountPatients(ctx context.Context) (int, error)
}
