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

type matchRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewMatchRepository(db *sqlx.DB, timeout time.Duration) repository.MatchRepository {
	return &matchRepository{db: db, timeout: timeout}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	// profile_a_id < profile_b_id is enforced by the table constraint; the
	// unique index on the pair is the serialization point for the concurrent
	// mutual-like race. DO NOTHING means the loser of that race sees no row
	// back and reports ErrMatchExists instead of a duplicate.
	aID, bID := domain.NormalizePair(match.ProfileAID, match.ProfileBID)

	query := `
		INSERT INTO matches (profile_a_id, profile_b_id)
		VALUES ($1, $2)
		ON CONFLICT (profile_a_id, profile_b_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, aID, bID).
		Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	match.ProfileAID = aID
	match.ProfileBID = bID

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrMatchExists
	}
	return wrapStoreErr(ctx, err)
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, wrapStoreErr(ctx, err)
	}
	return &match, nil
}

func (r *matchRepository) GetByProfiles(ctx context.Context, profileAID, profileBID int) (*domain.Match, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	aID, bID := domain.NormalizePair(profileAID, profileBID)

	var match domain.Match
	query := `SELECT * FROM matches WHERE profile_a_id = $1 AND profile_b_id = $2`
	err := r.db.GetContext(ctx, &match, query, aID, bID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, wrapStoreErr(ctx, err)
	}
	return &match, nil
}

func (r *matchRepository) GetProfileMatches(ctx context.Context, profileID int) ([]*domain.Match, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE profile_a_id = $1 OR profile_b_id = $1
		ORDER BY created_at DESC, id DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, profileID)
	if err != nil {
		return nil, wrapStoreErr(ctx, err)
	}
	return matches, nil
}
