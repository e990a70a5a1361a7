package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golang-ai-newsroom/pkg/postgres"
)

// KVEntry is a plain key/value row.
type KVEntry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;type:text"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// KVSet stores one set per row with its members in a text array column.
type KVSet struct {
	Key     string         `gorm:"column:key;primaryKey"`
	Members pq.StringArray `gorm:"column:members;type:text[]"`
}

func (KVSet) TableName() string {
	return "kv_sets"
}

// KVSortedMember is a single sorted-set member row.
type KVSortedMember struct {
	Key    string  `gorm:"column:key;primaryKey"`
	Member string  `gorm:"column:member;primaryKey"`
	Score  float64 `gorm:"column:score;index"`
}

func (KVSortedMember) TableName() string {
	return "kv_sorted_members"
}

type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore returns a Store backed by Postgres via GORM. MultiSet and
// the counter operations run inside transactions so concurrent writers see
// consistent state.
func NewPostgresStore(db *postgres.DB) Store {
	return &postgresStore{db: db.DB}
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&KVEntry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) MultiSet(ctx context.Context, pairs []KV) error {
	if len(pairs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range pairs {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&KVEntry{Key: p.Key, Value: p.Value}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to multi-set %d keys: %w", len(pairs), err)
	}
	return nil
}

func (s *postgresStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key IN ?", keys).Delete(&KVEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("key IN ?", keys).Delete(&KVSet{}).Error; err != nil {
			return err
		}
		return tx.Where("key IN ?", keys).Delete(&KVSortedMember{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

func (s *postgresStore) SAdd(ctx context.Context, key string, members ...string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var set KVSet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).First(&set).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			set = KVSet{Key: key}
		} else if err != nil {
			return err
		}
		existing := make(map[string]struct{}, len(set.Members))
		for _, m := range set.Members {
			existing[m] = struct{}{}
		}
		for _, m := range members {
			if _, ok := existing[m]; !ok {
				set.Members = append(set.Members, m)
				existing[m] = struct{}{}
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"members"}),
		}).Create(&set).Error
	})
	if err != nil {
		return fmt.Errorf("failed to sadd to %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) SRem(ctx context.Context, key string, members ...string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var set KVSet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", key).First(&set).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		remove := make(map[string]struct{}, len(members))
		for _, m := range members {
			remove[m] = struct{}{}
		}
		kept := set.Members[:0]
		for _, m := range set.Members {
			if _, ok := remove[m]; !ok {
				kept = append(kept, m)
			}
		}
		set.Members = kept
		return tx.Model(&KVSet{}).Where("key = ?", key).
			Update("members", set.Members).Error
	})
	if err != nil {
		return fmt.Errorf("failed to srem from %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) SMembers(ctx context.Context, key string) ([]string, error) {
	var set KVSet
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read set %s: %w", key, err)
	}
	return set.Members, nil
}

func (s *postgresStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "member"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).Create(&KVSortedMember{Key: key, Member: member, Score: score}).Error
	if err != nil {
		return fmt.Errorf("failed to zadd to %s: %w", key, err)
	}
	return nil
}

func (s *postgresStore) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	var members []string
	err := s.db.WithContext(ctx).Model(&KVSortedMember{}).
		Where("key = ? AND score >= ? AND score <= ?", key, min, max).
		Order("score ASC, member ASC").
		Pluck("member", &members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read sorted set %s: %w", key, err)
	}
	if members == nil {
		members = []string{}
	}
	return members, nil
}

func (s *postgresStore) ZRevRangeN(ctx context.Context, key string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	var members []string
	err := s.db.WithContext(ctx).Model(&KVSortedMember{}).
		Where("key = ?", key).
		Order("score DESC, member DESC").
		Limit(n).
		Pluck("member", &members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read sorted set %s: %w", key, err)
	}
	if members == nil {
		members = []string{}
	}
	return members, nil
}

func (s *postgresStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	var value string
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO kv_entries (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = (kv_entries.value::bigint + ?)::text
		RETURNING value`, key, fmt.Sprintf("%d", delta), delta).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to incr key %s: %w", key, err)
	}
	var result int64
	if _, err := fmt.Sscanf(value, "%d", &result); err != nil {
		return 0, fmt.Errorf("failed to parse counter %s: %w", key, err)
	}
	return result, nil
}

func (s *postgresStore) IncrByFloat(ctx context.Context, key string, delta float64) (float64, error) {
	var value string
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO kv_entries (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = (kv_entries.value::double precision + ?)::text
		RETURNING value`, key, fmt.Sprintf("%v", delta), delta).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to incr key %s: %w", key, err)
	}
	var result float64
	if _, err := fmt.Sscanf(value, "%g", &result); err != nil {
		return 0, fmt.Errorf("failed to parse counter %s: %w", key, err)
	}
	return result, nil
}

func (s *postgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
