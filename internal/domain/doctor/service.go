package doctor

import (
	"context"
	"errors"
)

var ErrProfileNotSet = errors.New("doctor profile not set")

type Service struct {
	repo ProfileRepository
}

func NewService(repo ProfileRepository) *Service {
	return &Service{repo: repo}
}

// SaveProfile stores p as the practice's single doctor profile, replacing
// any previous one.
func (s *Service) SaveProfile(ctx context.Context, p *Profile) error {
	return s.repo.Upsert(ctx, p)
}

// GetProfile returns the stored profile or ErrProfileNotSet.
func (s *Service) GetProfile(ctx context.Context) (*Profile, error) {
	return s.repo.Get(ctx)
}
