package domain

import (
	"strings"
	"time"
)

// Lifestyle descriptor levels used by the cleanliness, noise, schedule and
// guests fields. Stored as plain text, validated at the HTTP boundary.
const (
	LifestyleRelaxed  = "relaxed"
	LifestyleModerate = "moderate"
	LifestyleStrict   = "strict"
)

type Profile struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Age          *int      `json:"age" db:"age"`
	Bio          *string   `json:"bio" db:"bio"`
	Interests    *string   `json:"interests" db:"interests"`
	Cleanliness  *string   `json:"cleanliness" db:"cleanliness"`
	Noise        *string   `json:"noise" db:"noise"`
	Schedule     *string   `json:"schedule" db:"schedule"`
	Guests       *string   `json:"guests" db:"guests"`
	Smoking      *string   `json:"smoking" db:"smoking"`
	HasApartment bool      `json:"has_apartment" db:"has_apartment"`
	Zone         *string   `json:"zone" db:"zone"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// InterestTokens splits the free-text interests field into normalized tokens.
// Entries are comma separated; case and surrounding whitespace are ignored.
func (p *Profile) InterestTokens() []string {
	if p.Interests == nil {
		return nil
	}
	var tokens []string
	for _, raw := range strings.Split(*p.Interests, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// SharedInterestCount counts distinct interest tokens present in both profiles.
func (p *Profile) SharedInterestCount(other *Profile) int {
	mine := p.InterestTokens()
	if len(mine) == 0 {
		return 0
	}
	theirs := make(map[string]struct{})
	for _, token := range other.InterestTokens() {
		theirs[token] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{})
	for _, token := range mine {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := theirs[token]; ok {
			count++
		}
	}
	return count
}
