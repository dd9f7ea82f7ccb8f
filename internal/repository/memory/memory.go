// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces. They back the usecase tests and small deployments
// that embed the matching core without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
)

type pairKey struct {
	a, b int
}

func orderedKey(source, target int) pairKey {
	return pairKey{a: source, b: target}
}

func unorderedKey(a, b int) pairKey {
	a, b = domain.NormalizePair(a, b)
	return pairKey{a: a, b: b}
}

// PreferenceRepository is an in-memory repository.PreferenceRepository.
type PreferenceRepository struct {
	mu     sync.Mutex
	nextID int
	prefs  map[pairKey]*domain.Preference
}

func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{prefs: make(map[pairKey]*domain.Preference)}
}

func (r *PreferenceRepository) Upsert(_ context.Context, pref *domain.Preference, allowOverride bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orderedKey(pref.SourceID, pref.TargetID)
	now := time.Now()

	existing, ok := r.prefs[key]
	if !ok {
		r.nextID++
		stored := &domain.Preference{
			ID:        r.nextID,
			SourceID:  pref.SourceID,
			TargetID:  pref.TargetID,
			Decision:  pref.Decision,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.prefs[key] = stored
		*pref = *stored
		return nil
	}

	if existing.Decision != pref.Decision {
		if !allowOverride {
			return domain.ErrDecisionFinal
		}
		existing.Decision = pref.Decision
		existing.UpdatedAt = now
	}
	*pref = *existing
	return nil
}

func (r *PreferenceRepository) GetByProfiles(_ context.Context, sourceID, targetID int) (*domain.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pref, ok := r.prefs[orderedKey(sourceID, targetID)]
	if !ok {
		return nil, domain.ErrPreferenceNotFound
	}
	copied := *pref
	return &copied, nil
}

func (r *PreferenceRepository) HasLike(_ context.Context, sourceID, targetID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pref, ok := r.prefs[orderedKey(sourceID, targetID)]
	return ok && pref.Decision == domain.DecisionLike, nil
}

func (r *PreferenceRepository) ListTargetIDs(_ context.Context, sourceID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []int
	for key := range r.prefs {
		if key.a == sourceID {
			ids = append(ids, key.b)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// MatchRepository is an in-memory repository.MatchRepository. Create is an
// atomic insert-if-absent on the canonical pair key, mirroring the unique
// index a SQL store relies on.
type MatchRepository struct {
	mu      sync.Mutex
	nextID  int
	byPair  map[pairKey]*domain.Match
	matches []*domain.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{byPair: make(map[pairKey]*domain.Match)}
}

func (r *MatchRepository) Create(_ context.Context, match *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	aID, bID := domain.NormalizePair(match.ProfileAID, match.ProfileBID)
	match.ProfileAID = aID
	match.ProfileBID = bID

	key := pairKey{a: aID, b: bID}
	if _, ok := r.byPair[key]; ok {
		return domain.ErrMatchExists
	}

	r.nextID++
	now := time.Now()
	stored := &domain.Match{
		ID:         r.nextID,
		ProfileAID: aID,
		ProfileBID: bID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.byPair[key] = stored
	r.matches = append(r.matches, stored)
	*match = *stored
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, match := range r.matches {
		if match.ID == id {
			copied := *match
			return &copied, nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (r *MatchRepository) GetByProfiles(_ context.Context, profileAID, profileBID int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.byPair[unorderedKey(profileAID, profileBID)]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *MatchRepository) GetProfileMatches(_ context.Context, profileID int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Match
	for _, match := range r.matches {
		if match.HasProfile(profileID) {
			copied := *match
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ProfileRepository is an in-memory repository.ProfileRepository.
type ProfileRepository struct {
	mu       sync.Mutex
	nextID   int
	profiles map[int]*domain.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[int]*domain.Profile)}
}

func (r *ProfileRepository) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	profile.ID = r.nextID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *ProfileRepository) Update(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.profiles[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *ProfileRepository) SetActive(_ context.Context, id int, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.IsActive = isActive
	profile.UpdatedAt = time.Now()
	return nil
}

func (r *ProfileRepository) ListActive(_ context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Profile
	for _, profile := range r.profiles {
		if profile.IsActive {
			copied := *profile
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MessageRepository is an in-memory repository.MessageRepository. Append seeds
// conversations; the interface itself stays read-only.
type MessageRepository struct {
	mu       sync.Mutex
	nextID   int
	messages []*domain.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Append(message domain.Message) domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	message.ID = r.nextID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := message
	r.messages = append(r.messages, &copied)
	return message
}

func (r *MessageRepository) GetLatestForMatch(_ context.Context, matchID int) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *domain.Message
	for _, message := range r.messages {
		if message.MatchID != matchID {
			continue
		}
		if latest == nil || message.CreatedAt.After(latest.CreatedAt) ||
			(message.CreatedAt.Equal(latest.CreatedAt) && message.ID > latest.ID) {
			latest = message
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *MessageRepository) CountUnread(_ context.Context, matchID, recipientID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, message := range r.messages {
		if message.MatchID == matchID && message.SenderID != recipientID && !message.IsRead {
			count++
		}
	}
	return count, nil
}
