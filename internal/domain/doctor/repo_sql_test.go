package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/officedesk/officedesk/internal/platform/db/dbtest"
)

func TestSQL_ProfileUpsert(t *testing.T) {
	store := dbtest.Open(t)
	svc := NewService(NewProfileRepoSQL(store.DB))
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx); !errors.Is(err, ErrProfileNotSet) {
		t.Fatalf("expected ErrProfileNotSet on a fresh store, got %v", err)
	}

	first := &Profile{FirstName: "Maria", LastName: "Lee", Address: "Main St 1", Speciality: "General", Telephone: "555"}
	if err := svc.SaveProfile(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := &Profile{FirstName: "Maria", LastName: "Lee", Speciality: "Endodontics"}
	if err := svc.SaveProfile(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := svc.GetProfile(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != *second {
		t.Errorf("expected every field overwritten, got %+v", got)
	}

	var rows int
	if err := store.DB.Get(&rows, `SELECT COUNT(*) FROM doctor_profile`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected a single profile row, got %d", rows)
	}
}

func TestSQL_ProfileKeyConstraint(t *testing.T) {
	store := dbtest.Open(t)
	_, err := store.DB.Exec(`INSERT INTO doctor_profile (profile_key) VALUES ('other')`)
	if err == nil {
		t.Error("expected the store to reject a second profile key")
	}
}
