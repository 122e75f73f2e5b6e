package services

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// SessionEvents publishes and subscribes to session-marker rotations over
// redis pub/sub. Each sign-in publishes the fresh marker on the user's
// channel; open sessions watching that channel learn about the rotation
// without polling.
type SessionEvents struct {
	rdb *redis.Client
}

// NewSessionEvents wraps a redis client. A nil client disables publishing,
// leaving only the per-request marker check in the auth middleware.
func NewSessionEvents(rdb *redis.Client) *SessionEvents {
	return &SessionEvents{rdb: rdb}
}

// Enabled reports whether a redis backend is configured.
func (s *SessionEvents) Enabled() bool {
	return s.rdb != nil
}

func (s *SessionEvents) channel(userID string) string {
	return "stride:session:" + userID
}

// PublishMarker announces a rotated session marker for the user.
func (s *SessionEvents) PublishMarker(ctx context.Context, userID, marker string) error {
	if s.rdb == nil {
		log.Println("[Session] Redis not configured, skipping marker publish")
		return nil
	}
	return s.rdb.Publish(ctx, s.channel(userID), marker).Err()
}

// SubscribeMarker returns a channel of marker updates for the user and a
// cancel function that closes the subscription.
func (s *SessionEvents) SubscribeMarker(ctx context.Context, userID string) (<-chan string, func(), error) {
	if s.rdb == nil {
		return nil, nil, redis.ErrClosed
	}

	pubsub := s.rdb.Subscribe(ctx, s.channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}
