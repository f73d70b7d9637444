package customer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer maps to the customer table.
type Customer struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	BirthDate      string    `db:"birth_date" json:"birth_date"`
	RegisterDate   string    `db:"register_date" json:"register_date"`
	LastVisitDate  string    `db:"last_visit_date" json:"last_visit_date"`
	Referral       string    `db:"referral" json:"referral"`
	MedicalHistory string    `db:"medical_history" json:"medical_history"`
	ExtraInfo      string    `db:"extra_info" json:"extra_info"`

	// Balance is only populated by balance-augmented listings.
	Balance *decimal.Decimal `db:"-" json:"balance,omitempty"`
	// Therapies travel with the customer on create and update requests.
	Therapies []*Therapy `db:"-" json:"therapies,omitempty"`
}

// FullName is "First Last" with surrounding blanks removed.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Matches reports whether keyword occurs, ignoring case, in the customer's
// first name, last name, full name or phone. The empty keyword matches.
func (c *Customer) Matches(keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	for _, field := range []string{c.FirstName, c.LastName, c.FullName(), c.Phone} {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}

// Therapy maps to the therapy table: one dated treatment/billing line.
type Therapy struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	CustomerID  uuid.UUID       `db:"customer_id" json:"customer_id"`
	VisitDate   string          `db:"visit_date" json:"visit_date"`
	Tooth       string          `db:"tooth" json:"tooth"`
	Description string          `db:"description" json:"description"`
	Payment     decimal.Decimal `db:"payment" json:"payment"`
	Cost        decimal.Decimal `db:"cost" json:"cost"`
	Discount    decimal.Decimal `db:"discount" json:"discount"`
	Comment     string          `db:"comment" json:"comment"`
}

// Owed is what this line adds to the customer's balance.
func (t *Therapy) Owed() decimal.Decimal {
	return t.Cost.Sub(t.Payment).Sub(t.Discount)
}
