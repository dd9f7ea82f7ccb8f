package swipe

import (
	"context"
	"sync"
	"testing"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu          sync.Mutex
	matchEvents []*domain.Match
	feedEvents  []int
}

func (n *recordingNotifier) MatchCreated(_ context.Context, match *domain.Match) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	copied := *match
	n.matchEvents = append(n.matchEvents, &copied)
	return nil
}

func (n *recordingNotifier) CandidatesChanged(_ context.Context, profileID int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.feedEvents = append(n.feedEvents, profileID)
	return nil
}

type fixture struct {
	uc       *SwipeUseCase
	prefs    *memory.PreferenceRepository
	matches  *memory.MatchRepository
	profiles *memory.ProfileRepository
	notifier *recordingNotifier
}

func newFixture(t *testing.T, allowOverride bool, profileCount int) *fixture {
	t.Helper()

	prefs := memory.NewPreferenceRepository()
	matches := memory.NewMatchRepository()
	profiles := memory.NewProfileRepository()
	notifier := &recordingNotifier{}

	for i := 0; i < profileCount; i++ {
		profile := &domain.Profile{FirstName: "Test", IsActive: true}
		require.NoError(t, profiles.Create(context.Background(), profile))
	}

	return &fixture{
		uc:       NewSwipeUseCase(prefs, matches, profiles, notifier, zap.NewNop(), allowOverride),
		prefs:    prefs,
		matches:  matches,
		profiles: profiles,
		notifier: notifier,
	}
}

func TestRecordSwipe_SelfSwipeRejected(t *testing.T) {
	f := newFixture(t, true, 2)

	_, err := f.uc.RecordSwipe(context.Background(), 1, &SwipeRequest{TargetID: 1, Decision: "like"})
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)
}

func TestRecordSwipe_UnknownTargetRejected(t *testing.T) {
	f := newFixture(t, true, 2)

	_, err := f.uc.RecordSwipe(context.Background(), 1, &SwipeRequest{TargetID: 99, Decision: "like"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRecordSwipe_InvalidDecisionRejected(t *testing.T) {
	f := newFixture(t, true, 2)

	_, err := f.uc.RecordSwipe(context.Background(), 1, &SwipeRequest{TargetID: 2, Decision: "maybe"})
	assert.ErrorIs(t, err, domain.ErrInvalidDecision)
}

func TestRecordSwipe_IdempotentPreference(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	first, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)

	second, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)

	assert.Equal(t, first.Preference.ID, second.Preference.ID)
	assert.Equal(t, domain.DecisionLike, second.Preference.Decision)
	assert.Equal(t, first.Preference.CreatedAt, second.Preference.CreatedAt)
	assert.Equal(t, first.Preference.UpdatedAt, second.Preference.UpdatedAt)
}

func TestRecordSwipe_DecisionOverride(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "pass"})
	require.NoError(t, err)

	response, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionLike, response.Preference.Decision)

	// Still a single row for the ordered pair.
	pref, err := f.prefs.GetByProfiles(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionLike, pref.Decision)
	assert.Equal(t, response.Preference.ID, pref.ID)
}

func TestRecordSwipe_OverrideDisabled(t *testing.T) {
	f := newFixture(t, false, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "pass"})
	require.NoError(t, err)

	_, err = f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	assert.ErrorIs(t, err, domain.ErrDecisionFinal)

	// Re-issuing the same decision stays an accepted no-op.
	response, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "pass"})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionPass, response.Preference.Decision)
}

func TestRecordSwipe_FirstDecisionWinsUnderRace(t *testing.T) {
	f := newFixture(t, false, 2)
	ctx := context.Background()

	// Two conflicting swipes for the same ordered pair land at once. The
	// finality check lives in the store's atomic upsert, so exactly one
	// decision is recorded and the other swipe is rejected.
	decisions := []string{"like", "pass"}
	errs := make([]error, len(decisions))

	var wg sync.WaitGroup
	for i, decision := range decisions {
		wg.Add(1)
		go func(i int, decision string) {
			defer wg.Done()
			_, errs[i] = f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: decision})
		}(i, decision)
	}
	wg.Wait()

	var accepted []int
	for i, err := range errs {
		if err == nil {
			accepted = append(accepted, i)
		} else {
			assert.ErrorIs(t, err, domain.ErrDecisionFinal)
		}
	}
	require.Len(t, accepted, 1)

	pref, err := f.prefs.GetByProfiles(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Decision(decisions[accepted[0]]), pref.Decision)
}

func TestRecordSwipe_NoPrematureMatch(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	response, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)
	assert.False(t, response.IsMatch)
	assert.Nil(t, response.Match)

	_, err = f.matches.GetByProfiles(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	assert.Empty(t, f.notifier.matchEvents)
}

func TestRecordSwipe_MatchOnMutualLike(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)

	response, err := f.uc.RecordSwipe(ctx, 2, &SwipeRequest{TargetID: 1, Decision: "like"})
	require.NoError(t, err)
	require.True(t, response.IsMatch)
	require.NotNil(t, response.Match)
	assert.Equal(t, 1, response.Match.ProfileAID)
	assert.Equal(t, 2, response.Match.ProfileBID)
	require.NotNil(t, response.Counterpart)
	assert.Equal(t, 1, response.Counterpart.ProfileID)

	match, err := f.matches.GetByProfiles(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, response.Match.ID, match.ID)

	require.Len(t, f.notifier.matchEvents, 1)
	assert.Equal(t, match.ID, f.notifier.matchEvents[0].ID)
}

func TestRecordSwipe_PassBlocksMatch(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)

	response, err := f.uc.RecordSwipe(ctx, 2, &SwipeRequest{TargetID: 1, Decision: "pass"})
	require.NoError(t, err)
	assert.False(t, response.IsMatch)

	_, err = f.matches.GetByProfiles(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	mutual, err := f.prefs.HasLike(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, mutual)
}

func TestRecordSwipe_RepeatedMutualLikeKeepsSingleMatch(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)
	first, err := f.uc.RecordSwipe(ctx, 2, &SwipeRequest{TargetID: 1, Decision: "like"})
	require.NoError(t, err)

	// Re-swiping after the match must return the surviving row, not mint a
	// second one or re-announce the match.
	second, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "like"})
	require.NoError(t, err)
	require.True(t, second.IsMatch)
	assert.Equal(t, first.Match.ID, second.Match.ID)
	assert.Len(t, f.notifier.matchEvents, 1)
}

func TestEnsureMatch_NoDuplicateUnderRace(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	// Both directions already hold a like, as in the concurrent mutual-like
	// window where each side saw the other's like before any match existed.
	for _, pair := range [][2]int{{1, 2}, {2, 1}} {
		pref := &domain.Preference{SourceID: pair[0], TargetID: pair[1], Decision: domain.DecisionLike}
		require.NoError(t, f.prefs.Upsert(ctx, pref, true))
	}

	const writers = 16
	type result struct {
		match   *domain.Match
		created bool
		err     error
	}
	results := make([]result, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := 1, 2
			if i%2 == 1 {
				a, b = 2, 1
			}
			match, created, err := f.uc.ensureMatch(ctx, a, b)
			results[i] = result{match: match, created: created, err: err}
		}(i)
	}
	wg.Wait()

	createdCount := 0
	for _, r := range results {
		require.NoError(t, r.err)
		require.NotNil(t, r.match)
		assert.Equal(t, results[0].match.ID, r.match.ID)
		if r.created {
			createdCount++
		}
	}
	assert.Equal(t, 1, createdCount)

	matches, err := f.matches.GetProfileMatches(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRecordSwipe_PublishesFeedInvalidation(t *testing.T) {
	f := newFixture(t, true, 2)
	ctx := context.Background()

	_, err := f.uc.RecordSwipe(ctx, 1, &SwipeRequest{TargetID: 2, Decision: "pass"})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, f.notifier.feedEvents)
}
