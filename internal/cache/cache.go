package cache

import (
	"context"
	"fmt"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// SessionsTTL bounds staleness of the cached session listing. Entries are
// also invalidated on every chat insert.
const SessionsTTL = 60 * time.Second

func SessionsKey(studentID uint) string {
	return fmt.Sprintf("sessions:%d", studentID)
}
