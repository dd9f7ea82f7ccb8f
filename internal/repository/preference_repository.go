package repository

import (
	"context"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
)

type PreferenceRepository interface {
	// Upsert inserts the preference or overwrites the decision for the same
	// ordered (source, target) pair, filling ID and timestamps on the way out.
	// An unchanged decision leaves the stored row untouched. With allowOverride
	// off a conflicting decision is rejected with ErrDecisionFinal; the check
	// is atomic with the write so concurrent writers cannot slip past it.
	Upsert(ctx context.Context, pref *domain.Preference, allowOverride bool) error
	GetByProfiles(ctx context.Context, sourceID, targetID int) (*domain.Preference, error)
	// HasLike reports whether a "like" preference exists for the ordered pair.
	HasLike(ctx context.Context, sourceID, targetID int) (bool, error)
	// ListTargetIDs returns every profile the source has swiped on, in either
	// direction of decision.
	ListTargetIDs(ctx context.Context, sourceID int) ([]int, error)
}
