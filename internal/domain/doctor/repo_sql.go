package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/officedesk/officedesk/internal/platform/db"
)

type profileRepoSQL struct{ db *sqlx.DB }

func NewProfileRepoSQL(sqlDB *sqlx.DB) ProfileRepository {
	return &profileRepoSQL{db: sqlDB}
}

func (r *profileRepoSQL) conn(ctx context.Context) db.Queryer {
	return db.Conn(ctx, r.db)
}

func (r *profileRepoSQL) Upsert(ctx context.Context, p *Profile) error {
	q := r.conn(ctx)
	_, err := q.ExecContext(ctx, q.Rebind(`
		INSERT INTO doctor_profile (profile_key, first_name, last_name, address, speciality, telephone)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT (profile_key) DO UPDATE SET
			first_name = excluded.first_name,
			last_name  = excluded.last_name,
			address    = excluded.address,
			speciality = excluded.speciality,
			telephone  = excluded.telephone`),
		ProfileKey, p.FirstName, p.LastName, p.Address, p.Speciality, p.Telephone)
	if err != nil {
		return fmt.Errorf("upsert doctor profile: %w", err)
	}
	return nil
}

func (r *profileRepoSQL) Get(ctx context.Context) (*Profile, error) {
	q := r.conn(ctx)
	var p Profile
	err := q.GetContext(ctx, &p, q.Rebind(`
		SELECT first_name, last_name, address, speciality, telephone
		FROM doctor_profile WHERE profile_key = ?`), ProfileKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotSet
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor profile: %w", err)
	}
	return &p, nil
}
