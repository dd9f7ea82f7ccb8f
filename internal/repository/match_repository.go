package repository

import (
	"context"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
)

type MatchRepository interface {
	// Create inserts the match for the unordered pair, normalizing the ids
	// into canonical order first. Returns domain.ErrMatchExists when a row for
	// the pair already exists, including when a concurrent writer won the
	// insert race.
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByProfiles(ctx context.Context, profileAID, profileBID int) (*domain.Match, error)
	// GetProfileMatches returns all matches involving the profile, newest first.
	GetProfileMatches(ctx context.Context, profileID int) ([]*domain.Match, error)
}
