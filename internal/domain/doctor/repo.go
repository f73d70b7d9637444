package doctor

import "context"

type ProfileRepository interface {
	// Upsert inserts the profile row or overwrites every field of it.
	Upsert(ctx context.Context, p *Profile) error
	Get(ctx context.Context) (*Profile, error)
}
