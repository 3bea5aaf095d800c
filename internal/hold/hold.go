// Package hold keeps short-lived seat holds in redis while a user is
// picking seats. Holds are advisory: booking re-validates against the
// database, so a lapsed hold can only cause a submission-time conflict,
// never a double booking.
package hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiket-bioskop/internal/seatmap"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrSeatHeld = errors.New("seat is held by another user")
	ErrHoldFull = errors.New("hold limit reached")
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
	max int
	log *zap.Logger
}

func NewStore(rdb *redis.Client, ttl time.Duration, max int, log *zap.Logger) *Store {
	if max <= 0 {
		max = seatmap.MaxSelection
	}
	return &Store{
		rdb: rdb,
		ttl: ttl,
		max: max,
		log: log.With(zap.String("component", "hold")),
	}
}

// seatKey owns one seat: value is the holding user's ID.
func seatKey(scheduleID uuid.UUID, label string) string {
	return fmt.Sprintf("hold:seat:%s:%s", scheduleID.String(), label)
}

// userKey is the set of labels one user holds for one schedule.
func userKey(scheduleID, userID uuid.UUID) string {
	return fmt.Sprintf("hold:user:%s:%s", scheduleID.String(), userID.String())
}

// Toggle adds the seat to the user's hold set, or removes it if already
// held by that user. Returns true when the seat was added.
func (s *Store) Toggle(ctx context.Context, scheduleID, userID uuid.UUID, label string) (bool, error) {
	uk := userKey(scheduleID, userID)
	sk := seatKey(scheduleID, label)

	held, err := s.rdb.SIsMember(ctx, uk, label).Result()
	if err != nil {
		return false, fmt.Errorf("check hold membership: %w", err)
	}

	if held {
		if err := s.rdb.SRem(ctx, uk, label).Err(); err != nil {
			return false, fmt.Errorf("release held seat: %w", err)
		}
		if err := s.rdb.Del(ctx, sk).Err(); err != nil {
			return false, fmt.Errorf("release seat key: %w", err)
		}
		return false, nil
	}

	count, err := s.rdb.SCard(ctx, uk).Result()
	if err != nil {
		return false, fmt.Errorf("count held seats: %w", err)
	}
	if int(count) >= s.max {
		return false, ErrHoldFull
	}

	// SetNX loses the race to whoever claimed the seat first.
	ok, err := s.rdb.SetNX(ctx, sk, userID.String(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim seat: %w", err)
	}
	if !ok {
		return false, ErrSeatHeld
	}

	if err := s.rdb.SAdd(ctx, uk, label).Err(); err != nil {
		s.rdb.Del(ctx, sk)
		return false, fmt.Errorf("record held seat: %w", err)
	}
	// The whole selection shares one clock: every toggle restarts it.
	if err := s.rdb.Expire(ctx, uk, s.ttl).Err(); err != nil {
		return false, fmt.Errorf("refresh hold ttl: %w", err)
	}

	return true, nil
}

// HeldSeats returns the labels the user currently holds for a schedule.
func (s *Store) HeldSeats(ctx context.Context, scheduleID, userID uuid.UUID) ([]string, error) {
	labels, err := s.rdb.SMembers(ctx, userKey(scheduleID, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list held seats: %w", err)
	}
	seatmap.SortLabels(labels)
	return labels, nil
}

// Release drops the user's whole hold set for a schedule.
func (s *Store) Release(ctx context.Context, scheduleID, userID uuid.UUID) error {
	uk := userKey(scheduleID, userID)

	labels, err := s.rdb.SMembers(ctx, uk).Result()
	if err != nil {
		return fmt.Errorf("list held seats: %w", err)
	}

	for _, label := range labels {
		if err := s.rdb.Del(ctx, seatKey(scheduleID, label)).Err(); err != nil {
			s.log.Warn("Failed to release seat key",
				zap.Error(err),
				zap.String("schedule_id", scheduleID.String()),
				zap.String("seat", label),
			)
		}
	}

	if err := s.rdb.Del(ctx, uk).Err(); err != nil {
		return fmt.Errorf("release hold set: %w", err)
	}

	return nil
}
