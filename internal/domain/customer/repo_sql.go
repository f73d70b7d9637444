package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/officedesk/officedesk/internal/platform/db"
)

type customerRepoSQL struct{ db *sqlx.DB }

func NewCustomerRepoSQL(sqlDB *sqlx.DB) CustomerRepository {
	return &customerRepoSQL{db: sqlDB}
}

func (r *customerRepoSQL) conn(ctx context.Context) db.Queryer {
	return db.Conn(ctx, r.db)
}

const customerCols = `id, first_name, last_name, phone, address, birth_date,
	register_date, last_visit_date, referral, medical_history, extra_info`

func (r *customerRepoSQL) Create(ctx context.Context, c *Customer) error {
	c.ID = uuid.New()
	q := r.conn(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(`
		INSERT INTO customer (`+customerCols+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`),
		c.ID, c.FirstName, c.LastName, c.Phone, c.Address, c.BirthDate,
		c.RegisterDate, c.LastVisitDate, c.Referral, c.MedicalHistory, c.ExtraInfo)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepoSQL) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	q := r.conn(ctx)
	var c Customer
	err := q.GetContext(ctx, &c, q.Rebind(`SELECT `+customerCols+` FROM customer WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepoSQL) Update(ctx context.Context, c *Customer) error {
	q := r.conn(ctx)
	res, err := q.ExecContext(ctx, q.Rebind(`
		UPDATE customer SET first_name=?, last_name=?, phone=?, address=?,
			birth_date=?, register_date=?, last_visit_date=?, referral=?,
			medical_history=?, extra_info=?
		WHERE id = ?`),
		c.FirstName, c.LastName, c.Phone, c.Address, c.BirthDate,
		c.RegisterDate, c.LastVisitDate, c.Referral, c.MedicalHistory, c.ExtraInfo,
		c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepoSQL) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.conn(ctx)
	if _, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM customer WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (r *customerRepoSQL) List(ctx context.Context) ([]*Customer, error) {
	var items []*Customer
	err := r.conn(ctx).SelectContext(ctx, &items,
		`SELECT `+customerCols+` FROM customer ORDER BY last_name, first_name, id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return items, nil
}

type therapyRepoSQL struct{ db *sqlx.DB }

func NewTherapyRepoSQL(sqlDB *sqlx.DB) TherapyRepository {
	return &therapyRepoSQL{db: sqlDB}
}

func (r *therapyRepoSQL) conn(ctx context.Context) db.Queryer {
	return db.Conn(ctx, r.db)
}

const therapyCols = `id, customer_id, visit_date, tooth, description,
	payment, cost, discount, comment`

// Create inserts t. seq records insertion order so therapies sharing a
// visit date keep the order they were entered in.
func (r *therapyRepoSQL) Create(ctx context.Context, t *Therapy) error {
	t.ID = uuid.New()
	q := r.conn(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(`
		INSERT INTO therapy (`+therapyCols+`, seq)
		VALUES (?,?,?,?,?,?,?,?,?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM therapy))`),
		t.ID, t.CustomerID, t.VisitDate, t.Tooth, t.Description,
		t.Payment, t.Cost, t.Discount, t.Comment)
	if err != nil {
		return fmt.Errorf("insert therapy: %w", err)
	}
	return nil
}

func (r *therapyRepoSQL) Delete(ctx context.Context, id uuid.UUID) error {
	q := r.conn(ctx)
	if _, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM therapy WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete therapy: %w", err)
	}
	return nil
}

func (r *therapyRepoSQL) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	q := r.conn(ctx)
	if _, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM therapy WHERE customer_id = ?`), customerID); err != nil {
		return fmt.Errorf("delete therapies of customer: %w", err)
	}
	return nil
}

func (r *therapyRepoSQL) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Therapy, error) {
	q := r.conn(ctx)
	var items []*Therapy
	err := q.SelectContext(ctx, &items, q.Rebind(`SELECT `+therapyCols+` FROM therapy
		WHERE customer_id = ? ORDER BY visit_date, seq`), customerID)
	if err != nil {
		return nil, fmt.Errorf("list therapies: %w", err)
	}
	return items, nil
}

func (r *therapyRepoSQL) ListAll(ctx context.Context) ([]*Therapy, error) {
	var items []*Therapy
	err := r.conn(ctx).SelectContext(ctx, &items,
		`SELECT `+therapyCols+` FROM therapy ORDER BY customer_id, visit_date, seq`)
	if err != nil {
		return nil, fmt.Errorf("list all therapies: %w", err)
	}
	return items, nil
}
