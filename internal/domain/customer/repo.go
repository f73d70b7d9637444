package customer

import (
	"context"

	"github.com/google/uuid"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Customer, error)
}

type TherapyRepository interface {
	Create(ctx context.Context, t *Therapy) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Therapy, error)
	ListAll(ctx context.Context) ([]*Therapy, error)
}

// Transactor runs fn as one atomic unit of work.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
