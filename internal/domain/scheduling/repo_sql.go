package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/officedesk/officedesk/internal/platform/db"
)

type appointmentRepoSQL struct{ db *sqlx.DB }

func NewAppointmentRepoSQL(sqlDB *sqlx.DB) AppointmentRepository {
	return &appointmentRepoSQL{db: sqlDB}
}

func (r *appointmentRepoSQL) conn(ctx context.Context) db.Queryer {
	return db.Conn(ctx, r.db)
}

func (r *appointmentRepoSQL) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	q := r.conn(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(`
		INSERT INTO appointment (id, patient_name, appointment_date)
		VALUES (?,?,?)`),
		a.ID, a.PatientName, a.AppointmentDate)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepoSQL) ListUpcoming(ctx context.Context, limit int) ([]*Appointment, error) {
	q := r.conn(ctx)
	var items []*Appointment
	err := q.SelectContext(ctx, &items, q.Rebind(`
		SELECT id, patient_name, appointment_date FROM appointment
		ORDER BY appointment_date, id LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return items, nil
}

func (r *appointmentRepoSQL) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).GetContext(ctx, &n, `SELECT COUNT(DISTINCT patient_name) FROM appointment`)
	if err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}
