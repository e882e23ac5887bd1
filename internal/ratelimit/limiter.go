package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const likesWindow = time.Minute

// WindowStore counts events in fixed windows. Implemented by the redis
// store; tests substitute miniredis behind the same client.
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter bounds how many likes a user can record per minute.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	return &Limiter{store: store, perMinute: perMinute}
}

// AllowLike reports whether the user may record another like now. When
// denied it returns the number of seconds after which a retry can
// succeed. A zero per-minute limit disables the limiter.
func (l *Limiter) AllowLike(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	if l == nil || l.perMinute == 0 {
		return 0, true, nil
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, likeKey(userID), likesWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}
	return 0, true, nil
}

func likeKey(userID uuid.UUID) string {
	return "rate:likes:min:" + userID.String()
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
