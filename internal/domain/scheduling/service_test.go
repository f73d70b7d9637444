package scheduling

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
)

type mockAppointmentRepo struct {
	items     []*Appointment
	lastLimit int
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	m.items = append(m.items, a)
	return nil
}

func (m *mockAppointmentRepo) ListUpcoming(_ context.Context, limit int) ([]*Appointment, error) {
	m.lastLimit = limit
	out := append([]*Appointment(nil), m.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppointmentDate < out[j].AppointmentDate })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAppointmentRepo) CountPatients(_ context.Context) (int, error) {
	seen := make(map[string]bool)
	for _, a := range m.items {
		seen[a.PatientName] = true
	}
	return len(seen), nil
}

func seed(t *testing.T, svc *Service, pairs ...string) {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := svc.CreateAppointment(context.Background(), &Appointment{PatientName: pairs[i], AppointmentDate: pairs[i+1]}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestService_CreateAppointment_Validation(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, 5)
	err := svc.CreateAppointment(context.Background(), &Appointment{AppointmentDate: "2024-05-01"})
	if !errors.Is(err, ErrPatientNameRequired) {
		t.Errorf("expected ErrPatientNameRequired, got %v", err)
	}
	err = svc.CreateAppointment(context.Background(), &Appointment{PatientName: "Anna Lee", AppointmentDate: "  "})
	if !errors.Is(err, ErrAppointmentDateRequired) {
		t.Errorf("expected ErrAppointmentDateRequired, got %v", err)
	}
}

func TestService_ListUpcoming_Order(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, 5)
	seed(t, svc, "C", "2024-05-03 10:00", "A", "2024-05-01 09:00", "B", "2024-05-01 11:30")

	items, err := svc.ListUpcoming(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 || items[0].PatientName != "A" || items[1].PatientName != "B" || items[2].PatientName != "C" {
		t.Errorf("unexpected order: %+v", items)
	}
}

func TestService_ListUpcoming_DefaultLimit(t *testing.T) {
	repo := &mockAppointmentRepo{}
	svc := NewService(repo, 0)
	seed(t, svc,
		"A", "2024-01-01", "B", "2024-01-02", "C", "2024-01-03",
		"D", "2024-01-04", "E", "2024-01-05", "F", "2024-01-06", "G", "2024-01-07")

	items, _ := svc.ListUpcoming(context.Background(), 0)
	if repo.lastLimit != DefaultUpcomingLimit {
		t.Errorf("expected default limit %d, got %d", DefaultUpcomingLimit, repo.lastLimit)
	}
	if len(items) != DefaultUpcomingLimit {
		t.Errorf("expected %d items, got %d", DefaultUpcomingLimit, len(items))
	}

	items, _ = svc.ListUpcoming(context.Background(), 2)
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestService_ListUpcoming_Empty(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, 5)
	items, err := svc.ListUpcoming(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected an empty non-nil list, got %#v", items)
	}
}

func TestService_Dashboard(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, 2)
	seed(t, svc, "Anna", "2024-01-01", "Bob", "2024-01-02", "Anna", "2024-01-03")

	d, err := svc.Dashboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalPatients != 2 {
		t.Errorf("expected 2 distinct patients, got %d", d.TotalPatients)
	}
	if len(d.Upcoming) != 2 {
		t.Errorf("expected 2 upcoming, got %d", len(d.Upcoming))
	}
}
