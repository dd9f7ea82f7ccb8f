package domain

import "time"

// Match is the undirected pairing created once both directed likes exist.
// ProfileAID is always the smaller id; the unordered pair {A,B} maps to
// exactly one row.
type Match struct {
	ID         int       `json:"id" db:"id"`
	ProfileAID int       `json:"profile_a_id" db:"profile_a_id"`
	ProfileBID int       `json:"profile_b_id" db:"profile_b_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizePair returns the canonical ordering for an unordered profile pair.
func NormalizePair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasProfile(profileID int) bool {
	return m.ProfileAID == profileID || m.ProfileBID == profileID
}

func (m *Match) OtherProfileID(profileID int) (int, bool) {
	if m.ProfileAID == profileID {
		return m.ProfileBID, true
	}
	if m.ProfileBID == profileID {
		return m.ProfileAID, true
	}
	return 0, false
}
