package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"fitplanner/internal/resilience"
	"fitplanner/internal/telemetry"
)

const maxSnapshots = 20

type RedisStore struct {
	rdb *redis.Client
	cb  *resilience.CircuitBreaker
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		cb:  resilience.NewCircuitBreaker("redis-store", 3, 10*time.Second),
	}
}

func profileKey(userID string) string  { return fmt.Sprintf("profile:%s", userID) }
func progressKey(userID string) string { return fmt.Sprintf("progress:%s", userID) }

func (s *RedisStore) guard(op string, fn func() error) error {
	err := s.cb.Execute(fn)
	if err != nil {
		telemetry.ObserveStoreFailure(op)
	}
	return err
}

func (s *RedisStore) SaveProfile(ctx context.Context, userID string, snap ProfileSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.guard("save_profile", func() error {
		pipe := s.rdb.TxPipeline()
		pipe.LPush(ctx, profileKey(userID), data)
		pipe.LTrim(ctx, profileKey(userID), 0, maxSnapshots-1)
		_, err := pipe.Exec(ctx)
		return err
	})
}

func (s *RedisStore) LatestProfile(ctx context.Context, userID string) (ProfileSnapshot, error) {
	var data []byte
	err := s.guard("latest_profile", func() error {
		var err error
		data, err = s.rdb.LIndex(ctx, profileKey(userID), 0).Bytes()
		if errors.Is(err, redis.Nil) {
			data = nil
			return nil
		}
		return err
	})
	if err != nil {
		return ProfileSnapshot{}, err
	}
	if data == nil {
		return ProfileSnapshot{}, ErrNotFound
	}

	var snap ProfileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return ProfileSnapshot{}, fmt.Errorf("decode profile snapshot: %w", err)
	}
	return snap, nil
}

// progressMember carries an id so identical entries stay distinct members of
// the sorted set.
type progressMember struct {
	ID string `json:"id"`
	ProgressEntry
}

func (s *RedisStore) AppendProgress(ctx context.Context, userID string, entry ProgressEntry) error {
	entry.Date = entry.Date.UTC()
	data, err := json.Marshal(progressMember{ID: uuid.NewString(), ProgressEntry: entry})
	if err != nil {
		return err
	}

	return s.guard("append_progress", func() error {
		return s.rdb.ZAdd(ctx, progressKey(userID), &redis.Z{
			Score:  float64(entry.Date.UnixMilli()),
			Member: data,
		}).Err()
	})
}

func (s *RedisStore) ListProgress(ctx context.Context, userID string, limit int) ([]ProgressEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}

	var raw []string
	err := s.guard("list_progress", func() error {
		var err error
		raw, err = s.rdb.ZRange(ctx, progressKey(userID), start, -1).Result()
		return err
	})
	if err != nil {
		return nil, err
	}

	entries := make([]ProgressEntry, 0, len(raw))
	for _, member := range raw {
		var m progressMember
		if err := json.Unmarshal([]byte(member), &m); err != nil {
			return nil, fmt.Errorf("decode progress entry: %w", err)
		}
		entries = append(entries, m.ProgressEntry)
	}
	return entries, nil
}
