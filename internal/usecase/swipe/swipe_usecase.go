package swipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository"
	"go.uber.org/zap"
)

// Notifier is the outbound notification surface. Publishing is best-effort:
// failures are logged and never fail the swipe that triggered them.
type Notifier interface {
	MatchCreated(ctx context.Context, match *domain.Match) error
	CandidatesChanged(ctx context.Context, profileID int) error
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) MatchCreated(context.Context, *domain.Match) error { return nil }
func (NopNotifier) CandidatesChanged(context.Context, int) error      { return nil }

type SwipeUseCase struct {
	prefRepo    repository.PreferenceRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	notifier    Notifier
	logger      *zap.Logger

	// allowOverride permits a re-swipe to change an earlier decision
	// (pass -> like after an undo). When disabled the first decision is final.
	allowOverride bool
}

func NewSwipeUseCase(
	prefRepo repository.PreferenceRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	notifier Notifier,
	logger *zap.Logger,
	allowOverride bool,
) *SwipeUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SwipeUseCase{
		prefRepo:      prefRepo,
		matchRepo:     matchRepo,
		profileRepo:   profileRepo,
		notifier:      notifier,
		logger:        logger,
		allowOverride: allowOverride,
	}
}

// SwipeRequest records a like/pass decision toward a target profile.
type SwipeRequest struct {
	TargetID int    `json:"target_id" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=like pass"`
}

// CounterpartSummary is the slice of the matched profile surfaced with a new
// match.
type CounterpartSummary struct {
	ProfileID    int     `json:"profile_id"`
	DisplayName  string  `json:"display_name"`
	Age          *int    `json:"age,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Zone         *string `json:"zone,omitempty"`
	HasApartment bool    `json:"has_apartment"`
}

type SwipeResponse struct {
	Preference  *domain.Preference  `json:"preference"`
	IsMatch     bool                `json:"is_match"`
	Match       *domain.Match       `json:"match,omitempty"`
	Counterpart *CounterpartSummary `json:"counterpart,omitempty"`
}

// RecordSwipe persists the directed preference, and on a like checks whether
// the reverse like already exists. A mutual like materializes the match for
// the unordered pair exactly once. Any failure after the preference write
// fails the whole swipe; the caller retries the operation end to end, which is
// safe because both the upsert and the insert-if-absent are idempotent.
func (uc *SwipeUseCase) RecordSwipe(ctx context.Context, swiperID int, req *SwipeRequest) (*SwipeResponse, error) {
	if swiperID == req.TargetID {
		return nil, domain.ErrCannotSwipeSelf
	}
	decision := domain.Decision(req.Decision)
	if !decision.Valid() {
		return nil, domain.ErrInvalidDecision
	}

	target, err := uc.profileRepo.GetByID(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	pref, err := uc.recordPreference(ctx, swiperID, req.TargetID, decision)
	if err != nil {
		return nil, err
	}

	response := &SwipeResponse{Preference: pref}

	if decision == domain.DecisionLike {
		mutual, err := uc.prefRepo.HasLike(ctx, req.TargetID, swiperID)
		if err != nil {
			// A dropped match is a correctness bug; never treat a failed
			// mutual check as "not mutual".
			return nil, fmt.Errorf("check mutual like: %w", err)
		}

		if mutual {
			match, created, err := uc.ensureMatch(ctx, swiperID, req.TargetID)
			if err != nil {
				return nil, fmt.Errorf("ensure match: %w", err)
			}
			response.IsMatch = true
			response.Match = match
			response.Counterpart = summarize(target)

			if created {
				uc.publishMatch(ctx, match)
			}
		}
	}

	uc.publishCandidatesChanged(ctx, swiperID)
	return response, nil
}

// recordPreference delegates the write to the store's upsert, which enforces
// decision finality atomically when overrides are off. A read-then-write check
// here would leave a window for two conflicting swipes to both pass it.
func (uc *SwipeUseCase) recordPreference(ctx context.Context, sourceID, targetID int, decision domain.Decision) (*domain.Preference, error) {
	pref := &domain.Preference{SourceID: sourceID, TargetID: targetID, Decision: decision}
	if err := uc.prefRepo.Upsert(ctx, pref, uc.allowOverride); err != nil {
		if errors.Is(err, domain.ErrDecisionFinal) {
			return nil, domain.ErrDecisionFinal
		}
		return nil, fmt.Errorf("record preference: %w", err)
	}
	return pref, nil
}

// ensureMatch creates the match for the unordered pair if it does not exist
// yet. Both sides of a near-simultaneous mutual like can reach this point; the
// store's unique pair key rejects the second writer, which then re-reads the
// surviving row. The reported created flag is true for exactly one caller.
func (uc *SwipeUseCase) ensureMatch(ctx context.Context, profileAID, profileBID int) (*domain.Match, bool, error) {
	existing, err := uc.matchRepo.GetByProfiles(ctx, profileAID, profileBID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, false, err
	}

	match := &domain.Match{ProfileAID: profileAID, ProfileBID: profileBID}
	err = uc.matchRepo.Create(ctx, match)
	if errors.Is(err, domain.ErrMatchExists) {
		existing, err := uc.matchRepo.GetByProfiles(ctx, profileAID, profileBID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return match, true, nil
}

func (uc *SwipeUseCase) publishMatch(ctx context.Context, match *domain.Match) {
	if err := uc.notifier.MatchCreated(ctx, match); err != nil {
		uc.logger.Warn("failed to publish match created event",
			zap.Int("match_id", match.ID),
			zap.Error(err))
	}
	for _, profileID := range []int{match.ProfileAID, match.ProfileBID} {
		uc.publishCandidatesChanged(ctx, profileID)
	}
}

func (uc *SwipeUseCase) publishCandidatesChanged(ctx context.Context, profileID int) {
	if err := uc.notifier.CandidatesChanged(ctx, profileID); err != nil {
		uc.logger.Warn("failed to publish candidates changed event",
			zap.Int("profile_id", profileID),
			zap.Error(err))
	}
}

func summarize(profile *domain.Profile) *CounterpartSummary {
	return &CounterpartSummary{
		ProfileID:    profile.ID,
		DisplayName:  profile.DisplayName(),
		Age:          profile.Age,
		Bio:          profile.Bio,
		Zone:         profile.Zone,
		HasApartment: profile.HasApartment,
	}
}
