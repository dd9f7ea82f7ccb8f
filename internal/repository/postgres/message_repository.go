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

type messageRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewMessageRepository(db *sqlx.DB, timeout time.Duration) repository.MessageRepository {
	return &messageRepository{db: db, timeout: timeout}
}

func (r *messageRepository) GetLatestForMatch(ctx context.Context, matchID int) (*domain.Message, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var message domain.Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &message, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr(ctx, err)
	}
	return &message, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, matchID, recipientID int) (int, error) {
	ctx, cancel := queryContext(ctx, r.timeout)
	defer cancel()

	var count int
	query := `
		SELECT COUNT(*) FROM messages
		WHERE match_id = $1 AND sender_id <> $2 AND is_read = false
	`
	err := r.db.GetContext(ctx, &count, query, matchID, recipientID)
	if err != nil {
		return 0, wrapStoreErr(ctx, err)
	}
	return count, nil
}
