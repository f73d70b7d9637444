package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerIDRequired = errors.New("customer id is required")
)

type Service struct {
	customers CustomerRepository
	therapies TherapyRepository
	tx        Transactor
}

func NewService(customers CustomerRepository, therapies TherapyRepository, tx Transactor) *Service {
	return &Service{customers: customers, therapies: therapies, tx: tx}
}

// CreateCustomer inserts c together with any therapies attached to it.
func (s *Service) CreateCustomer(ctx context.Context, c *Customer) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.customers.Create(ctx, c); err != nil {
			return err
		}
		return s.insertLedger(ctx, c.ID, c.Therapies)
	})
}

// UpdateCustomer overwrites every attribute of c. A non-nil Therapies slice
// replaces the stored ledger in the same transaction; nil leaves it alone.
func (s *Service) UpdateCustomer(ctx context.Context, c *Customer) error {
	if c.ID == uuid.Nil {
		return ErrCustomerIDRequired
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.customers.Update(ctx, c); err != nil {
			return err
		}
		if c.Therapies == nil {
			return nil
		}
		if err := s.therapies.DeleteByCustomer(ctx, c.ID); err != nil {
			return err
		}
		return s.insertLedger(ctx, c.ID, c.Therapies)
	})
}

// DeleteCustomer removes the customer and its whole ledger. Unknown ids are
// a no-op.
func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.therapies.DeleteByCustomer(ctx, id); err != nil {
			return err
		}
		return s.customers.Delete(ctx, id)
	})
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.customers.GetByID(ctx, id)
}

// ListCustomers returns every customer ordered by last then first name.
func (s *Service) ListCustomers(ctx context.Context, withBalance bool) ([]*Customer, error) {
	items, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	if !withBalance {
		return items, nil
	}
	all, err := s.therapies.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	attachBalances(items, SummarizeByCustomer(all))
	return items, nil
}

// SearchCustomers filters ListCustomers by a case-insensitive substring of
// name or phone, keeping its order.
func (s *Service) SearchCustomers(ctx context.Context, keyword string, withBalance bool) ([]*Customer, error) {
	items, err := s.ListCustomers(ctx, withBalance)
	if err != nil {
		return nil, err
	}
	matched := make([]*Customer, 0, len(items))
	for _, c := range items {
		if c.Matches(keyword) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// AddTherapy appends t to the ledger of customerID.
func (s *Service) AddTherapy(ctx context.Context, customerID uuid.UUID, t *Therapy) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.customers.GetByID(ctx, customerID); err != nil {
			return err
		}
		t.CustomerID = customerID
		return s.therapies.Create(ctx, t)
	})
}

func (s *Service) DeleteTherapy(ctx context.Context, id uuid.UUID) error {
	return s.therapies.Delete(ctx, id)
}

// ListTherapies returns the ledger of customerID ordered by visit date.
func (s *Service) ListTherapies(ctx context.Context, customerID uuid.UUID) ([]*Therapy, error) {
	return s.therapies.ListByCustomer(ctx, customerID)
}

// ReplaceTherapies swaps the whole ledger of customerID for therapies. Either
// the full replacement is stored or nothing changes.
func (s *Service) ReplaceTherapies(ctx context.Context, customerID uuid.UUID, therapies []*Therapy) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.customers.GetByID(ctx, customerID); err != nil {
			return err
		}
		if err := s.therapies.DeleteByCustomer(ctx, customerID); err != nil {
			return err
		}
		return s.insertLedger(ctx, customerID, therapies)
	})
}

// Balance summarizes the ledger of customerID.
func (s *Service) Balance(ctx context.Context, customerID uuid.UUID) (LedgerSummary, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return LedgerSummary{}, err
	}
	items, err := s.therapies.ListByCustomer(ctx, customerID)
	if err != nil {
		return LedgerSummary{}, err
	}
	return Summarize(items), nil
}

func (s *Service) insertLedger(ctx context.Context, customerID uuid.UUID, therapies []*Therapy) error {
	for i, t := range therapies {
		t.CustomerID = customerID
		if err := s.therapies.Create(ctx, t); err != nil {
			return fmt.Errorf("therapy %d: %w", i+1, err)
		}
	}
	return nil
}
