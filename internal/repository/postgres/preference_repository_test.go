package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPreferenceUpsert_InsertsAndScansRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, time.Second)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO preferences")).
		WithArgs(1, 2, domain.DecisionLike).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_id", "target_id", "decision", "created_at", "updated_at"}).
			AddRow(7, 1, 2, "like", now, now))

	pref := &domain.Preference{SourceID: 1, TargetID: 2, Decision: domain.DecisionLike}
	require.NoError(t, repo.Upsert(context.Background(), pref, true))

	assert.Equal(t, 7, pref.ID)
	assert.Equal(t, domain.DecisionLike, pref.Decision)
	assert.Equal(t, now, pref.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceUpsert_KeepsFinalDecision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, time.Second)

	// With overrides disabled the conflict clause returns the stored row;
	// a surviving decision that differs from the requested one is final.
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO preferences")).
		WithArgs(1, 2, domain.DecisionLike).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_id", "target_id", "decision", "created_at", "updated_at"}).
			AddRow(7, 1, 2, "pass", now, now))

	pref := &domain.Preference{SourceID: 1, TargetID: 2, Decision: domain.DecisionLike}
	err := repo.Upsert(context.Background(), pref, false)
	assert.ErrorIs(t, err, domain.ErrDecisionFinal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceUpsert_NoOverrideSameDecision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, time.Second)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO preferences")).
		WithArgs(1, 2, domain.DecisionPass).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_id", "target_id", "decision", "created_at", "updated_at"}).
			AddRow(7, 1, 2, "pass", now, now))

	pref := &domain.Preference{SourceID: 1, TargetID: 2, Decision: domain.DecisionPass}
	require.NoError(t, repo.Upsert(context.Background(), pref, false))
	assert.Equal(t, domain.DecisionPass, pref.Decision)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceHasLike_DeadlineMapsToStoreTimeout(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, 10*time.Millisecond)

	// The driver reports the expired deadline in its own words, not as an
	// error wrapping context.DeadlineExceeded; the mapping must still fire.
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(2, 1, domain.DecisionLike).
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.HasLike(context.Background(), 2, 1)
	assert.ErrorIs(t, err, domain.ErrStoreTimeout)
}

func TestPreferenceGetByProfiles_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM preferences")).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_id", "target_id", "decision", "created_at", "updated_at"}))

	_, err := repo.GetByProfiles(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrPreferenceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceHasLike(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, time.Second)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(2, 1, domain.DecisionLike).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mutual, err := repo.HasLike(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, mutual)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceListTargetIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferenceRepository(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT target_id FROM preferences")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"target_id"}).AddRow(2).AddRow(5))

	ids, err := repo.ListTargetIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
