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

type profileRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewProfileRepository(db *sqlx.DB, timeout time.Duration) repository.ProfileRepository {
	return &profileRepository{db: db, timeout: timeout}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO profiles (
			first_name, last_name, age, bio, interests,
			cleanliness, noise, schedule, guests, smoking,
			has_apartment, zone, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.Age, profile.Bio, profile.Interests,
		profile.Cleanliness, profile.Noise, profile.Schedule, profile.Guests, profile.Smoking,
		profile.HasApartment, profile.Zone, profile.IsActive,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return wrapStoreErr(ctx, err)
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, wrapStoreErr(ctx, err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, age = $3, bio = $4, interests = $5,
		    cleanliness = $6, noise = $7, schedule = $8, guests = $9, smoking = $10,
		    has_apartment = $11, zone = $12,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.Age, profile.Bio, profile.Interests,
		profile.Cleanliness, profile.Noise, profile.Schedule, profile.Guests, profile.Smoking,
		profile.HasApartment, profile.Zone,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return wrapStoreErr(ctx, err)
}

func (r *profileRepository) SetActive(ctx context.Context, id int, isActive bool) error {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	query := `UPDATE profiles SET is_active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, isActive, id)
	if err != nil {
		return wrapStoreErr(ctx, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapStoreErr(ctx, err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListActive(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var profiles []*domain.Profile
	query := `SELECT * FROM profiles WHERE is_active = true ORDER BY id`
	err := r.db.SelectContext(ctx, &profiles, query)
	if err != nil {
		return nil, wrapStoreErr(ctx, err)
	}
	return profiles, nil
}
