package match

import (
	"context"
	"errors"
	"time"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository"
	"go.uber.org/zap"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	messageRepo repository.MessageRepository,
	logger *zap.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// CounterpartView is the other side of a match. When the counterpart profile
// is gone or deactivated only the id and the active flag survive; the match
// itself is never dropped from the list.
type CounterpartView struct {
	ProfileID   int     `json:"profile_id"`
	DisplayName string  `json:"display_name"`
	Age         *int    `json:"age,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Zone        *string `json:"zone,omitempty"`
	Active      bool    `json:"active"`
}

type MatchView struct {
	MatchID       int             `json:"match_id"`
	Counterpart   CounterpartView `json:"counterpart"`
	CreatedAt     time.Time       `json:"created_at"`
	LastMessage   *string         `json:"last_message,omitempty"`
	LastMessageAt *time.Time      `json:"last_message_at,omitempty"`
	UnreadCount   int             `json:"unread_count"`
}

// ListMatches returns every match involving the profile, newest first, joined
// with the counterpart profile and the latest message.
func (uc *MatchUseCase) ListMatches(ctx context.Context, profileID int) ([]*MatchView, error) {
	matches, err := uc.matchRepo.GetProfileMatches(ctx, profileID)
	if err != nil {
		uc.logger.Warn("match list read failed, retrying once",
			zap.Int("profile_id", profileID),
			zap.Error(err))
		matches, err = uc.matchRepo.GetProfileMatches(ctx, profileID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherProfileID(profileID)
		if !ok {
			continue
		}

		view := &MatchView{
			MatchID:     m.ID,
			Counterpart: uc.resolveCounterpart(ctx, m.ID, otherID),
			CreatedAt:   m.CreatedAt,
		}

		latest, err := uc.messageRepo.GetLatestForMatch(ctx, m.ID)
		if err != nil {
			// Message data is decoration on the view; degrade to "no message"
			// instead of hiding the match.
			uc.logger.Warn("failed to load latest message",
				zap.Int("match_id", m.ID),
				zap.Error(err))
		} else if latest != nil {
			view.LastMessage = &latest.Body
			view.LastMessageAt = &latest.CreatedAt

			unread, err := uc.messageRepo.CountUnread(ctx, m.ID, profileID)
			if err != nil {
				uc.logger.Warn("failed to count unread messages",
					zap.Int("match_id", m.ID),
					zap.Error(err))
			} else {
				view.UnreadCount = unread
			}
		}

		views = append(views, view)
	}
	return views, nil
}

func (uc *MatchUseCase) resolveCounterpart(ctx context.Context, matchID, profileID int) CounterpartView {
	profile, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			uc.logger.Warn("failed to resolve counterpart profile",
				zap.Int("match_id", matchID),
				zap.Int("profile_id", profileID),
				zap.Error(err))
		}
		return CounterpartView{ProfileID: profileID}
	}
	if !profile.IsActive {
		return CounterpartView{ProfileID: profileID}
	}
	return CounterpartView{
		ProfileID:   profile.ID,
		DisplayName: profile.DisplayName(),
		Age:         profile.Age,
		Bio:         profile.Bio,
		Zone:        profile.Zone,
		Active:      true,
	}
}
