package sandbox

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/scheduling"
)

type recordingWriter struct {
	customers    []*customer.Customer
	appointments []*scheduling.Appointment
	failAfter    int
}

func (w *recordingWriter) CreateCustomer(_ context.Context, c *customer.Customer) error {
	if w.failAfter > 0 && len(w.customers) == w.failAfter {
		return errors.New("disk full")
	}
	w.customers = append(w.customers, c)
	return nil
}

func (w *recordingWriter) CreateAppointment(_ context.Context, a *scheduling.Appointment) error {
	w.appointments = append(w.appointments, a)
	return nil
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func TestDataGenerator_Deterministic(t *testing.T) {
	a := NewDataGenerator(42).GenerateCustomer(3)
	b := NewDataGenerator(42).GenerateCustomer(3)

	if a.FullName() != b.FullName() || a.Phone != b.Phone {
		t.Errorf("same seed gave different customers: %q/%q vs %q/%q", a.FullName(), a.Phone, b.FullName(), b.Phone)
	}
	for i := range a.Therapies {
		if a.Therapies[i].Description != b.Therapies[i].Description || !a.Therapies[i].Cost.Equal(b.Therapies[i].Cost) {
			t.Errorf("therapy %d differs between runs", i)
		}
	}
}

func TestDataGenerator_GenerateCustomer(t *testing.T) {
	gen := NewDataGenerator(7)
	c := gen.GenerateCustomer(4)

	if c.FirstName == "" || c.LastName == "" {
		t.Errorf("expected a name, got %+v", c)
	}
	if len(c.Therapies) != 4 {
		t.Fatalf("expected 4 therapies, got %d", len(c.Therapies))
	}
	if !datePattern.MatchString(c.BirthDate) || !datePattern.MatchString(c.LastVisitDate) {
		t.Errorf("unexpected date format: birth=%q last=%q", c.BirthDate, c.LastVisitDate)
	}
	for _, th := range c.Therapies {
		if th.VisitDate > c.LastVisitDate {
			t.Errorf("last visit %s is before therapy visit %s", c.LastVisitDate, th.VisitDate)
		}
	}
}

func TestDataGenerator_GenerateTherapy(t *testing.T) {
	gen := NewDataGenerator(1)
	for i := 0; i < 200; i++ {
		th := gen.GenerateTherapy()
		if th.Cost.IsNegative() || th.Payment.IsNegative() || th.Discount.IsNegative() {
			t.Fatalf("negative money in %+v", th)
		}
		if th.Owed().IsNegative() {
			t.Fatalf("generated line overpays: %+v", th)
		}
		if !datePattern.MatchString(th.VisitDate) {
			t.Fatalf("unexpected visit date %q", th.VisitDate)
		}
	}
}

func TestDataGenerator_GenerateAppointment(t *testing.T) {
	ap := NewDataGenerator(3).GenerateAppointment()
	if ap.PatientName == "" {
		t.Error("expected a patient name")
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`).MatchString(ap.AppointmentDate) {
		t.Errorf("unexpected appointment date %q", ap.AppointmentDate)
	}
}

func TestSeeder_Seed(t *testing.T) {
	w := &recordingWriter{}
	cfg := SeedConfig{Customers: 5, TherapiesPerCustomer: 2, Appointments: 3, Seed: 99}

	result, err := NewSeeder(cfg, w, w).Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Customers != 5 || result.Therapies != 10 || result.Appointments != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(w.customers) != 5 || len(w.appointments) != 3 {
		t.Errorf("expected 5 customers and 3 appointments written, got %d and %d", len(w.customers), len(w.appointments))
	}
}

func TestSeeder_StopsOnFailure(t *testing.T) {
	w := &recordingWriter{failAfter: 2}
	cfg := SeedConfig{Customers: 5, TherapiesPerCustomer: 1, Appointments: 3, Seed: 99}

	result, err := NewSeeder(cfg, w, w).Seed(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if result.Customers != 2 || result.Appointments != 0 {
		t.Errorf("expected partial result of 2 customers, got %+v", result)
	}
}

func TestDefaultSeedConfig(t *testing.T) {
	cfg := DefaultSeedConfig()
	if cfg.Customers <= 0 || cfg.TherapiesPerCustomer <= 0 || cfg.Appointments <= 0 {
		t.Errorf("expected positive defaults, got %+v", cfg)
	}
}
