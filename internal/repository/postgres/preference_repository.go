package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository"
	"github.com/jmoiron/sqlx"
)

type preferenceRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPreferenceRepository(db *sqlx.DB, timeout time.Duration) repository.PreferenceRepository {
	return &preferenceRepository{db: db, timeout: timeout}
}

// An unchanged decision keeps updated_at so a repeated swipe is a real
// no-op, not a timestamp bump.
const upsertOverrideQuery = `
	INSERT INTO preferences (source_id, target_id, decision)
	VALUES ($1, $2, $3)
	ON CONFLICT (source_id, target_id) DO UPDATE
	SET decision = EXCLUDED.decision,
	    updated_at = CASE
	        WHEN preferences.decision IS DISTINCT FROM EXCLUDED.decision THEN CURRENT_TIMESTAMP
	        ELSE preferences.updated_at
	    END
	RETURNING id, source_id, target_id, decision, created_at, updated_at
`

// With overrides disabled a conflicting write keeps the stored decision. The
// returned row tells the caller which decision actually survived, so finality
// holds even when two writers race past any prior read.
const upsertKeepExistingQuery = `
	INSERT INTO preferences (source_id, target_id, decision)
	VALUES ($1, $2, $3)
	ON CONFLICT (source_id, target_id) DO UPDATE
	SET decision = preferences.decision
	RETURNING id, source_id, target_id, decision, created_at, updated_at
`

func (r *preferenceRepository) Upsert(ctx context.Context, pref *domain.Preference, allowOverride bool) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := upsertOverrideQuery
	if !allowOverride {
		query = upsertKeepExistingQuery
	}

	requested := pref.Decision
	err := r.db.QueryRowContext(ctx, query, pref.SourceID, pref.TargetID, requested).
		Scan(&pref.ID, &pref.SourceID, &pref.TargetID, &pref.Decision, &pref.CreatedAt, &pref.UpdatedAt)
	if err != nil {
		return wrapStoreErr(ctx, err)
	}
	if pref.Decision != requested {
		return domain.ErrDecisionFinal
	}
	return nil
}

func (r *preferenceRepository) GetByProfiles(ctx context.Context, sourceID, targetID int) (*domain.Preference, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var pref domain.Preference
	query := `SELECT * FROM preferences WHERE source_id = $1 AND target_id = $2`
	err := r.db.GetContext(ctx, &pref, query, sourceID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferenceNotFound
		}
		return nil, wrapStoreErr(ctx, err)
	}
	return &pref, nil
}

func (r *preferenceRepository) HasLike(ctx context.Context, sourceID, targetID int) (bool, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM preferences
			WHERE source_id = $1 AND target_id = $2 AND decision = $3
		)
	`
	err := r.db.GetContext(ctx, &exists, query, sourceID, targetID, domain.DecisionLike)
	if err != nil {
		return false, wrapStoreErr(ctx, err)
	}
	return exists, nil
}

func (r *preferenceRepository) ListTargetIDs(ctx context.Context, sourceID int) ([]int, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var ids []int
	query := `SELECT target_id FROM preferences WHERE source_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, sourceID)
	if err != nil {
		return nil, wrapStoreErr(ctx, err)
	}
	return ids, nil
}
