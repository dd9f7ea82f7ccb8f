package repository

import (
	"context"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
)

// MessageRepository is read-only: messages are appended by the chat
// collaborator, this core only derives view data from them.
type MessageRepository interface {
	// GetLatestForMatch returns the newest message on the match, or nil when
	// the conversation is empty.
	GetLatestForMatch(ctx context.Context, matchID int) (*domain.Message, error)
	// CountUnread counts messages on the match sent to recipientID that the
	// recipient has not read yet.
	CountUnread(ctx context.Context, matchID, recipientID int) (int, error)
}
