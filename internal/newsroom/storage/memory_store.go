package storage

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	values  map[string]string
	sets    map[string]map[string]struct{}
	sorted  map[string]map[string]float64
}

// NewMemoryStore returns an in-process Store backed by maps. It is used in
// tests and for single-node development runs.
func NewMemoryStore() Store {
	return &memoryStore{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
		sorted: make(map[string]map[string]float64),
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) MultiSet(ctx context.Context, pairs []KV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pairs {
		s.values[p.Key] = p.Value
	}
	return nil
}

func (s *memoryStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
		delete(s.sets, k)
		delete(s.sorted, k)
	}
	return nil
}

func (s *memoryStore) SAdd(ctx context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[key]
	if set == nil {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

func (s *memoryStore) SRem(ctx context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[key]
	for _, m := range members {
		delete(set, m)
	}
	return nil
}

func (s *memoryStore) SMembers(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.sets[key]
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members, nil
}

func (s *memoryStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset := s.sorted[key]
	if zset == nil {
		zset = make(map[string]float64)
		s.sorted[key] = zset
	}
	zset[member] = score
	return nil
}

func (s *memoryStore) sortedMembers(key string) []ScoredMember {
	zset := s.sorted[key]
	out := make([]ScoredMember, 0, len(zset))
	for m, sc := range zset {
		out = append(out, ScoredMember{Member: m, Score: sc})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Member < out[j].Member
	})
	return out
}

func (s *memoryStore) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, sm := range s.sortedMembers(key) {
		if sm.Score >= min && sm.Score <= max {
			out = append(out, sm.Member)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (s *memoryStore) ZRevRangeN(ctx context.Context, key string, n int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return []string{}, nil
	}
	members := s.sortedMembers(key)
	out := make([]string, 0, n)
	for i := len(members) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, members[i].Member)
	}
	return out, nil
}

func (s *memoryStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := strconv.ParseInt(s.values[key], 10, 64)
	cur += delta
	s.values[key] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (s *memoryStore) IncrByFloat(ctx context.Context, key string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := strconv.ParseFloat(s.values[key], 64)
	cur += delta
	s.values[key] = strconv.FormatFloat(cur, 'f', -1, 64)
	return cur, nil
}

func (s *memoryStore) Close() error {
	return nil
}
