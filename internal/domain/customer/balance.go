package customer

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerSummary holds the column totals of a therapy ledger.
type LedgerSummary struct {
	Payments  decimal.Decimal `json:"payments"`
	Costs     decimal.Decimal `json:"costs"`
	Discounts decimal.Decimal `json:"discounts"`
	Balance   decimal.Decimal `json:"balance"`
}

// Add folds one therapy into the summary.
func (s *LedgerSummary) Add(t *Therapy) {
	s.Payments = s.Payments.Add(t.Payment)
	s.Costs = s.Costs.Add(t.Cost)
	s.Discounts = s.Discounts.Add(t.Discount)
	s.Balance = s.Balance.Add(t.Owed())
}

// Summarize totals a ledger. An empty ledger yields all zeros.
func Summarize(therapies []*Therapy) LedgerSummary {
	var s LedgerSummary
	for _, t := range therapies {
		s.Add(t)
	}
	return s
}

// SummarizeByCustomer groups therapies by owner and totals each group.
// Customers without therapies are absent from the result, and callers treat
// absence as a zero balance.
func SummarizeByCustomer(therapies []*Therapy) map[uuid.UUID]LedgerSummary {
	out := make(map[uuid.UUID]LedgerSummary)
	for _, t := range therapies {
		s := out[t.CustomerID]
		s.Add(t)
		out[t.CustomerID] = s
	}
	return out
}

// attachBalances sets Balance on every customer from sums, zero when missing.
func attachBalances(customers []*Customer, sums map[uuid.UUID]LedgerSummary) {
	for _, c := range customers {
		b := sums[c.ID].Balance
		c.Balance = &b
	}
}
