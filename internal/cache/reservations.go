// internal/cache/reservations.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReservationCache is a best-effort redis cache of the rendered JSON view of
// a user's reservation list. Misses and redis failures both fall through to
// the database; mutations drop the key.
type ReservationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, ttl time.Duration) *ReservationCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &ReservationCache{client: client, ttl: ttl}
}

func userReservationsKey(userID string) string {
	return fmt.Sprintf("reservations:user:%s", userID)
}

// GetUserReservations returns the cached JSON body for a user, or false on a
// miss or any redis error.
func (c *ReservationCache) GetUserReservations(ctx context.Context, userID string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, userReservationsKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Ctx(ctx).Warn().Err(err).Msg("Reservation cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// SetUserReservations stores the JSON body for a user with the cache TTL.
func (c *ReservationCache) SetUserReservations(ctx context.Context, userID string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, userReservationsKey(userID), payload, c.ttl).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Reservation cache write failed")
	}
}

// InvalidateUserReservations drops the cached view after a mutation.
func (c *ReservationCache) InvalidateUserReservations(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, userReservationsKey(userID)).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("Reservation cache invalidation failed")
	}
}

// Close releases the redis client.
func (c *ReservationCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
