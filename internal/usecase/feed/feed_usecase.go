package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository"
	"go.uber.org/zap"
)

const defaultFeedLimit = 50

type FeedUseCase struct {
	profileRepo repository.ProfileRepository
	prefRepo    repository.PreferenceRepository
	matchRepo   repository.MatchRepository
	logger      *zap.Logger
	limit       int
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	prefRepo repository.PreferenceRepository,
	matchRepo repository.MatchRepository,
	logger *zap.Logger,
	limit int,
) *FeedUseCase {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return &FeedUseCase{
		profileRepo: profileRepo,
		prefRepo:    prefRepo,
		matchRepo:   matchRepo,
		logger:      logger,
		limit:       limit,
	}
}

// CandidateResponse is a feed entry.
type CandidateResponse struct {
	ProfileID       int     `json:"profile_id"`
	DisplayName     string  `json:"display_name"`
	Age             *int    `json:"age,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Interests       *string `json:"interests,omitempty"`
	Cleanliness     *string `json:"cleanliness,omitempty"`
	Noise           *string `json:"noise,omitempty"`
	Schedule        *string `json:"schedule,omitempty"`
	Guests          *string `json:"guests,omitempty"`
	Smoking         *string `json:"smoking,omitempty"`
	HasApartment    bool    `json:"has_apartment"`
	Zone            *string `json:"zone,omitempty"`
	SharedInterests int     `json:"shared_interests"`
}

// GetCandidates returns active profiles the requester has not swiped on and is
// not matched with. Ordering is deterministic for a given requester on a given
// dataset: shared-interest count descending, profile id ascending. Re-querying
// is side-effect free, so the read is retried once on a store failure.
func (uc *FeedUseCase) GetCandidates(ctx context.Context, profileID int) ([]*CandidateResponse, error) {
	candidates, err := uc.loadCandidates(ctx, profileID)
	if err != nil && retryable(err) {
		uc.logger.Warn("candidate feed read failed, retrying once",
			zap.Int("profile_id", profileID),
			zap.Error(err))
		candidates, err = uc.loadCandidates(ctx, profileID)
	}
	return candidates, err
}

func (uc *FeedUseCase) loadCandidates(ctx context.Context, profileID int) ([]*CandidateResponse, error) {
	me, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load requesting profile: %w", err)
	}

	swiped, err := uc.prefRepo.ListTargetIDs(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load swiped targets: %w", err)
	}

	matches, err := uc.matchRepo.GetProfileMatches(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	actives, err := uc.profileRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active profiles: %w", err)
	}

	excluded := make(map[int]struct{}, len(swiped)+len(matches)+1)
	excluded[profileID] = struct{}{}
	for _, targetID := range swiped {
		excluded[targetID] = struct{}{}
	}
	for _, match := range matches {
		if otherID, ok := match.OtherProfileID(profileID); ok {
			excluded[otherID] = struct{}{}
		}
	}

	type scored struct {
		profile *domain.Profile
		shared  int
	}
	var pool []scored
	for _, candidate := range actives {
		if candidate.ID == 0 {
			// A row without an identity cannot be swiped on; skip it rather
			// than crash or serve an unusable card.
			uc.logger.Warn("skipping candidate with missing identity",
				zap.String("display_name", candidate.DisplayName()))
			continue
		}
		if _, skip := excluded[candidate.ID]; skip {
			continue
		}
		pool = append(pool, scored{profile: candidate, shared: me.SharedInterestCount(candidate)})
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].shared != pool[j].shared {
			return pool[i].shared > pool[j].shared
		}
		return pool[i].profile.ID < pool[j].profile.ID
	})

	if len(pool) > uc.limit {
		pool = pool[:uc.limit]
	}

	responses := make([]*CandidateResponse, 0, len(pool))
	for _, entry := range pool {
		p := entry.profile
		responses = append(responses, &CandidateResponse{
			ProfileID:       p.ID,
			DisplayName:     p.DisplayName(),
			Age:             p.Age,
			Bio:             p.Bio,
			Interests:       p.Interests,
			Cleanliness:     p.Cleanliness,
			Noise:           p.Noise,
			Schedule:        p.Schedule,
			Guests:          p.Guests,
			Smoking:         p.Smoking,
			HasApartment:    p.HasApartment,
			Zone:            p.Zone,
			SharedInterests: entry.shared,
		})
	}
	return responses, nil
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrProfileNotFound)
}
