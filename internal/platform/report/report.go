// Package report turns a customer, its therapy ledger and the doctor
// profile into a printable customer sheet.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/doctor"
)

var (
	ErrUnknownField  = errors.New("unknown customer field")
	ErrUnknownFormat = errors.New("unknown report format")
)

const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

// fieldOrder is the fixed order customer fields appear in on a sheet.
var fieldOrder = []struct {
	key   string
	label string
	value func(c *customer.Customer) string
}{
	{"phone", "Phone", func(c *customer.Customer) string { return c.Phone }},
	{"address", "Address", func(c *customer.Customer) string { return c.Address }},
	{"birth_date", "Birth date", func(c *customer.Customer) string { return c.BirthDate }},
	{"register_date", "Registered", func(c *customer.Customer) string { return c.RegisterDate }},
	{"last_visit_date", "Last visit", func(c *customer.Customer) string { return c.LastVisitDate }},
	{"referral", "Referral", func(c *customer.Customer) string { return c.Referral }},
	{"medical_history", "Medical history", func(c *customer.Customer) string { return c.MedicalHistory }},
	{"extra_info", "Extra info", func(c *customer.Customer) string { return c.ExtraInfo }},
}

// FieldNames lists every selectable customer field in sheet order.
func FieldNames() []string {
	out := make([]string, len(fieldOrder))
	for i, f := range fieldOrder {
		out[i] = f.key
	}
	return out
}

// Field is one labelled customer attribute on the sheet.
type Field struct {
	Key   string
	Label string
	Value string
}

// Line is a therapy row with money already formatted.
type Line struct {
	VisitDate   string
	Tooth       string
	Description string
	Payment     string
	Cost        string
	Discount    string
	Comment     string
}

// Totals is the formatted ledger summary.
type Totals struct {
	Payments  string
	Costs     string
	Discounts string
	Balance   string
}

// Doctor is the footer block. Nil when no profile has been saved.
type Doctor struct {
	Name       string
	Speciality string
	Address    string
	Telephone  string
}

// Sheet is the render-ready customer document.
type Sheet struct {
	Title  string
	Fields []Field
	Lines  []Line
	Totals Totals
	Doctor *Doctor
}

// Build assembles the sheet for c. fields selects which customer
// attributes are shown; an empty selection shows all of them. profile may
// be nil.
func Build(c *customer.Customer, therapies []*customer.Therapy, profile *doctor.Profile, fields []string) (*Sheet, error) {
	selected, err := selectFields(fields)
	if err != nil {
		return nil, err
	}

	s := &Sheet{Title: c.FullName()}
	for _, f := range fieldOrder {
		if selected == nil || selected[f.key] {
			s.Fields = append(s.Fields, Field{Key: f.key, Label: f.label, Value: f.value(c)})
		}
	}

	for _, t := range therapies {
		s.Lines = append(s.Lines, Line{
			VisitDate:   t.VisitDate,
			Tooth:       t.Tooth,
			Description: t.Description,
			Payment:     money(t.Payment),
			Cost:        money(t.Cost),
			Discount:    money(t.Discount),
			Comment:     t.Comment,
		})
	}

	sum := customer.Summarize(therapies)
	s.Totals = Totals{
		Payments:  money(sum.Payments),
		Costs:     money(sum.Costs),
		Discounts: money(sum.Discounts),
		Balance:   money(sum.Balance),
	}

	if profile != nil {
		s.Doctor = &Doctor{
			Name:       profile.FullName(),
			Speciality: profile.Speciality,
			Address:    profile.Address,
			Telephone:  profile.Telephone,
		}
	}
	return s, nil
}

// ParseFields splits a comma separated field list, dropping blanks.
func ParseFields(raw string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func selectFields(fields []string) (map[string]bool, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	known := make(map[string]bool, len(fieldOrder))
	for _, f := range fieldOrder {
		known[f.key] = true
	}
	selected := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !known[f] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		selected[f] = true
	}
	return selected, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Write renders s in format to w.
func Write(w io.Writer, s *Sheet, format string) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, s)
	case FormatHTML:
		return WriteHTML(w, s)
	case FormatXLSX:
		return WriteXLSX(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ContentType returns the MIME type of format.
func ContentType(format string) (string, error) {
	switch format {
	case FormatPDF:
		return "application/pdf", nil
	case FormatHTML:
		return "text/html; charset=utf-8", nil
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
