// Package notify publishes matching events over Redis pub/sub. Consumers
// (gateway, websocket fanout) subscribe per profile; the matching core only
// emits.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	matchChannelPrefix = "homi:notify:match:"
	feedChannelPrefix  = "homi:notify:feed:"
)

// MatchEvent is the payload published to both members of a new match.
type MatchEvent struct {
	MatchID       int       `json:"match_id"`
	ProfileID     int       `json:"profile_id"`
	CounterpartID int       `json:"counterpart_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// FeedEvent tells a client its candidate feed is stale and should be refetched.
type FeedEvent struct {
	ProfileID int       `json:"profile_id"`
	At        time.Time `json:"at"`
}

type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// MatchChannel is the pub/sub channel carrying new-match events for a profile.
func MatchChannel(profileID int) string {
	return fmt.Sprintf("%s%d", matchChannelPrefix, profileID)
}

// FeedChannel is the pub/sub channel carrying feed invalidations for a profile.
func FeedChannel(profileID int) string {
	return fmt.Sprintf("%s%d", feedChannelPrefix, profileID)
}

func (n *RedisNotifier) MatchCreated(ctx context.Context, match *domain.Match) error {
	pairs := []struct{ profileID, counterpartID int }{
		{match.ProfileAID, match.ProfileBID},
		{match.ProfileBID, match.ProfileAID},
	}
	for _, pair := range pairs {
		payload, err := json.Marshal(MatchEvent{
			MatchID:       match.ID,
			ProfileID:     pair.profileID,
			CounterpartID: pair.counterpartID,
			CreatedAt:     match.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal match event: %w", err)
		}
		if err := n.client.Publish(ctx, MatchChannel(pair.profileID), payload).Err(); err != nil {
			return fmt.Errorf("publish match event: %w", err)
		}
	}
	return nil
}

func (n *RedisNotifier) CandidatesChanged(ctx context.Context, profileID int) error {
	payload, err := json.Marshal(FeedEvent{ProfileID: profileID, At: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := n.client.Publish(ctx, FeedChannel(profileID), payload).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}
