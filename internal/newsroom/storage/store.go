package storage

import (
	"context"
)

// KV is a single key/value pair written in one MultiSet batch.
type KV struct {
	Key   string
	Value string
}

// ScoredMember is a sorted-set member together with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// Store is the persistence contract every backend implements. Keys are plain
// strings owned by the repository layer; values are strings. Reads of missing
// keys return the zero value and no error, callers decide whether absence is
// meaningful.
type Store interface {
	// Get returns the value for key, or "" if the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	// Set writes a single key.
	Set(ctx context.Context, key, value string) error
	// MultiSet writes all pairs atomically. Either every pair is visible or
	// none is.
	MultiSet(ctx context.Context, pairs []KV) error
	// Del removes the given keys. Missing keys are ignored.
	Del(ctx context.Context, keys ...string) error

	// SAdd adds members to the set at key.
	SAdd(ctx context.Context, key string, members ...string) error
	// SRem removes members from the set at key.
	SRem(ctx context.Context, key string, members ...string) error
	// SMembers returns all members of the set at key, or an empty slice if
	// the set does not exist.
	SMembers(ctx context.Context, key string) ([]string, error)

	// ZAdd adds a member with the given score to the sorted set at key,
	// updating the score if the member already exists.
	ZAdd(ctx context.Context, key string, score float64, member string) error
	// ZRangeByScore returns members with min <= score <= max, ordered by
	// ascending score, ties broken by member.
	ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error)
	// ZRevRangeN returns up to n members ordered by descending score, ties
	// broken by member descending. n <= 0 returns an empty slice.
	ZRevRangeN(ctx context.Context, key string, n int) ([]string, error)

	// IncrBy atomically adds delta to the integer at key, treating a missing
	// key as 0, and returns the new value.
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
	// IncrByFloat atomically adds delta to the float at key, treating a
	// missing key as 0, and returns the new value.
	IncrByFloat(ctx context.Context, key string, delta float64) (float64, error)

	// Close releases backend resources.
	Close() error
}
