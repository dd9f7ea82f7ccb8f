package domain

import "time"

// Decision is the recorded outcome of a swipe.
type Decision string

const (
	DecisionLike Decision = "like"
	DecisionPass Decision = "pass"
)

func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionPass
}

// Preference is a directed edge from the swiping profile to the swiped one.
// At most one row exists per ordered (source, target) pair; a re-swipe
// overwrites the decision rather than appending.
type Preference struct {
	ID        int       `json:"id" db:"id"`
	SourceID  int       `json:"source_id" db:"source_id"`
	TargetID  int       `json:"target_id" db:"target_id"`
	Decision  Decision  `json:"decision" db:"decision"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
