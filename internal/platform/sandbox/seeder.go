// Package sandbox generates reproducible demo practice data: customers with
// therapy ledgers and a handful of appointments. It is meant for trying the
// application out and for UI work, never for a store holding real records.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/scheduling"
)

// SeedConfig controls the volume of generated data.
type SeedConfig struct {
	Customers            int   `json:"customers"`
	TherapiesPerCustomer int   `json:"therapies_per_customer"`
	Appointments         int   `json:"appointments"`
	Seed                 int64 `json:"seed"`
}

// DefaultSeedConfig returns a small practice.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Customers:            20,
		TherapiesPerCustomer: 3,
		Appointments:         8,
	}
}

// SeedResult summarizes a seed run.
type SeedResult struct {
	Customers    int           `json:"customers"`
	Therapies    int           `json:"therapies"`
	Appointments int           `json:"appointments"`
	Duration     time.Duration `json:"duration"`
}

var (
	firstNames = []string{
		"Anna", "Maria", "Eleni", "Sophia", "Laura", "Emma", "Katerina",
		"Nikos", "Giorgos", "Dimitris", "Jürgen", "Ömer", "Paul", "David",
		"Mark", "Thomas", "Sarah", "Helen", "Jonas", "Lena",
	}
	lastNames = []string{
		"Lee", "Adams", "Papadopoulos", "Nikolaou", "Groß", "Yılmaz",
		"Smith", "Brown", "Miller", "Wagner", "Schmidt", "Georgiou",
		"Clark", "Walker", "Young", "King", "Hill", "Baker",
	}
	streets = []string{
		"Main St 1", "Oak Ave 12", "Elm St 7", "Pine Rd 33", "Maple Dr 4",
		"Cedar Ln 19", "Birch Blvd 2", "Walnut Way 41",
	}
	referrals = []string{"", "", "Dr. Smith", "Friend", "Website", "Dr. Georgiou"}
	histories = []string{"", "", "penicillin allergy", "diabetes", "hypertension", "anticoagulants"}

	procedures = []struct {
		description string
		cost        int64
	}{
		{"check-up", 30},
		{"cleaning", 50},
		{"filling", 80},
		{"root canal", 250},
		{"extraction", 90},
		{"crown", 400},
		{"x-ray", 25},
		{"whitening", 150},
	}
	comments = []string{"", "", "", "follow-up in six months", "sensitive", "paid in cash"}
)

// DataGenerator produces deterministic synthetic practice records.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator returns a generator seeded for reproducibility. If seed is
// 0 a time-based seed is chosen.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) randomDate(minYear, maxYear int) string {
	y := minYear + g.rng.Intn(maxYear-minYear+1)
	m := 1 + g.rng.Intn(12)
	d := 1 + g.rng.Intn(28)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func (g *DataGenerator) randomPhone() string {
	return fmt.Sprintf("69%08d", g.rng.Intn(100000000))
}

// tooth returns an FDI tooth number such as "36".
func (g *DataGenerator) tooth() string {
	return fmt.Sprintf("%d%d", 1+g.rng.Intn(4), 1+g.rng.Intn(8))
}

// GenerateCustomer produces a customer with therapies ledger lines. Ids are
// left for the store to assign.
func (g *DataGenerator) GenerateCustomer(therapies int) *customer.Customer {
	c := &customer.Customer{
		FirstName:      g.pick(firstNames),
		LastName:       g.pick(lastNames),
		Phone:          g.randomPhone(),
		Address:        g.pick(streets),
		BirthDate:      g.randomDate(1940, 2015),
		RegisterDate:   g.randomDate(2015, 2020),
		Referral:       g.pick(referrals),
		MedicalHistory: g.pick(histories),
	}
	for i := 0; i < therapies; i++ {
		c.Therapies = append(c.Therapies, g.GenerateTherapy())
	}
	for _, t := range c.Therapies {
		if t.VisitDate > c.LastVisitDate {
			c.LastVisitDate = t.VisitDate
		}
	}
	return c
}

// GenerateTherapy produces one ledger line. Most lines are paid in full,
// some partly, and a few carry a discount.
func (g *DataGenerator) GenerateTherapy() *customer.Therapy {
	p := procedures[g.rng.Intn(len(procedures))]
	cost := decimal.NewFromInt(p.cost)
	discount := decimal.Zero
	if g.rng.Intn(5) == 0 {
		discount = decimal.NewFromInt(p.cost / 10)
	}

	payment := cost.Sub(discount)
	switch g.rng.Intn(4) {
	case 0:
		payment = decimal.Zero
	case 1:
		payment = payment.Div(decimal.NewFromInt(2)).Round(2)
	}

	return &customer.Therapy{
		VisitDate:   g.randomDate(2020, 2024),
		Tooth:       g.tooth(),
		Description: p.description,
		Payment:     payment,
		Cost:        cost,
		Discount:    discount,
		Comment:     g.pick(comments),
	}
}

// GenerateAppointment produces an appointment for a random patient name.
func (g *DataGenerator) GenerateAppointment() *scheduling.Appointment {
	date := fmt.Sprintf("%s %02d:%02d", g.randomDate(2025, 2026), 9+g.rng.Intn(9), 15*g.rng.Intn(4))
	return &scheduling.Appointment{
		PatientName:     g.pick(firstNames) + " " + g.pick(lastNames),
		AppointmentDate: date,
	}
}

// CustomerWriter stores a customer together with its ledger.
type CustomerWriter interface {
	CreateCustomer(ctx context.Context, c *customer.Customer) error
}

// AppointmentWriter stores an appointment.
type AppointmentWriter interface {
	CreateAppointment(ctx context.Context, a *scheduling.Appointment) error
}

// Seeder writes generated records through the domain services.
type Seeder struct {
	generator    *DataGenerator
	config       SeedConfig
	customers    CustomerWriter
	appointments AppointmentWriter
}

// NewSeeder creates a Seeder with the given config.
func NewSeeder(config SeedConfig, customers CustomerWriter, appointments AppointmentWriter) *Seeder {
	return &Seeder{
		generator:    NewDataGenerator(config.Seed),
		config:       config,
		customers:    customers,
		appointments: appointments,
	}
}

// Seed generates and stores every record. It stops at the first failure and
// reports what was written up to that point.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	start := time.Now()
	result := &SeedResult{}

	for i := 0; i < s.config.Customers; i++ {
		c := s.generator.GenerateCustomer(s.config.TherapiesPerCustomer)
		if err := s.customers.CreateCustomer(ctx, c); err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("seed customer %d: %w", i+1, err)
		}
		result.Customers++
		result.Therapies += len(c.Therapies)
	}

	for i := 0; i < s.config.Appointments; i++ {
		if err := s.appointments.CreateAppointment(ctx, s.generator.GenerateAppointment()); err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("seed appointment %d: %w", i+1, err)
		}
		result.Appointments++
	}

	result.Duration = time.Since(start)
	return result, nil
}
