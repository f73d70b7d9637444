package scheduling

import (
	"context"
	"errors"
	"strings"
)

// DefaultUpcomingLimit is used when no preview size is configured.
const DefaultUpcomingLimit = 5

var (
	ErrPatientNameRequired     = errors.New("patient_name is required")
	ErrAppointmentDateRequired = errors.New("appointment_date is required")
)

type Service struct {
	repo         AppointmentRepository
	defaultLimit int
}

// NewService builds the appointment preview service. A non-positive
// defaultLimit falls back to DefaultUpcomingLimit.
func NewService(repo AppointmentRepository, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultUpcomingLimit
	}
	return &Service{repo: repo, defaultLimit: defaultLimit}
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if strings.TrimSpace(a.PatientName) == "" {
		return ErrPatientNameRequired
	}
	if strings.TrimSpace(a.AppointmentDate) == "" {
		return ErrAppointmentDateRequired
	}
	return s.repo.Create(ctx, a)
}

// ListUpcoming returns the earliest appointments, at most limit of them.
// limit <= 0 uses the service default.
func (s *Service) ListUpcoming(ctx context.Context, limit int) ([]*Appointment, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	items, err := s.repo.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Appointment{}
	}
	return items, nil
}

// CountPatients returns the number of distinct patient names booked.
func (s *Service) CountPatients(ctx context.Context) (int, error) {
	return s.repo.CountPatients(ctx)
}

func (s *Service) Dashboard(ctx context.Context, limit int) (*Dashboard, error) {
	upcoming, err := s.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.CountPatients(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Upcoming: upcoming, TotalPatients: total}, nil
}
