package repository

import (
	"context"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	SetActive(ctx context.Context, id int, isActive bool) error
	// ListActive returns every active profile. The candidate feed applies its
	// own exclusions on top.
	ListActive(ctx context.Context) ([]*domain.Profile, error)
}
