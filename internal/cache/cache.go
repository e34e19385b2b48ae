package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// JobsKey caches the per-user job list that the dashboard polls.
func JobsKey(userID string) string { return "jobs:" + userID }

// JobListTTL is short on purpose: the dashboard polls, so a stale list
// self-heals on the next interval even if an invalidation is missed.
const JobListTTL = 30 * time.Second
