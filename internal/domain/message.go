package domain

import "time"

// Message rows are owned by the chat collaborator; this core only reads them
// to surface "latest message" and unread counts on match views.
type Message struct {
	ID        int       `json:"id" db:"id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	SenderID  int       `json:"sender_id" db:"sender_id"`
	Body      string    `json:"body" db:"body"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
