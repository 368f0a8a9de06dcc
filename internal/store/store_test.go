package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitplanner/internal/models"
	"fitplanner/internal/resilience"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb), mr
}

// runStoreSuite exercises the Store contract against any implementation.
func runStoreSuite(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	t.Run("profile not found", func(t *testing.T) {
		_, err := s.LatestProfile(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("latest profile wins", func(t *testing.T) {
		first := models.DefaultProfile()
		second := models.DefaultProfile()
		second.WeightKg = 69.5
		second.CountryCode = "DE"

		snap1, err := NewProfileSnapshot(first, base)
		require.NoError(t, err)
		snap2, err := NewProfileSnapshot(second, base.Add(time.Hour))
		require.NoError(t, err)

		require.NoError(t, s.SaveProfile(ctx, "u1", snap1))
		require.NoError(t, s.SaveProfile(ctx, "u1", snap2))

		got, err := s.LatestProfile(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, got.CreatedAt.Equal(base.Add(time.Hour)))

		profile, err := got.Profile()
		require.NoError(t, err)
		assert.Equal(t, second, profile)

		_, err = s.LatestProfile(ctx, "u2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("progress ordered by date", func(t *testing.T) {
		require.NoError(t, s.AppendProgress(ctx, "u1", ProgressEntry{Date: base.Add(14 * 24 * time.Hour), WeightKg: 70.1}))
		require.NoError(t, s.AppendProgress(ctx, "u1", ProgressEntry{Date: base, WeightKg: 71}))
		require.NoError(t, s.AppendProgress(ctx, "u1", ProgressEntry{Date: base.Add(7 * 24 * time.Hour), WeightKg: 70.6}))

		all, err := s.ListProgress(ctx, "u1", 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []float64{71, 70.6, 70.1}, []float64{all[0].WeightKg, all[1].WeightKg, all[2].WeightKg})

		recent, err := s.ListProgress(ctx, "u1", 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, 70.6, recent[0].WeightKg)
		assert.Equal(t, 70.1, recent[1].WeightKg)

		empty, err := s.ListProgress(ctx, "u9", 0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("identical entries are kept", func(t *testing.T) {
		entry := ProgressEntry{Date: base, WeightKg: 70.5}
		require.NoError(t, s.AppendProgress(ctx, "u3", entry))
		require.NoError(t, s.AppendProgress(ctx, "u3", entry))

		all, err := s.ListProgress(ctx, "u3", 0)
		require.NoError(t, err)
		require.Len(t, all, 2)
		for _, got := range all {
			assert.Equal(t, 70.5, got.WeightKg)
			assert.True(t, got.Date.Equal(base))
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemory())
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisStore(t)
	runStoreSuite(t, s)
}

func TestRedisStoreTrimsSnapshots(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	for i := 0; i < maxSnapshots+5; i++ {
		snap, err := NewProfileSnapshot(models.DefaultProfile(), time.Unix(int64(i), 0))
		require.NoError(t, err)
		require.NoError(t, s.SaveProfile(ctx, "u1", snap))
	}

	items, err := mr.List(profileKey("u1"))
	require.NoError(t, err)
	assert.Len(t, items, maxSnapshots)
}

func TestRedisStoreCircuitOpensWhenRedisDown(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := s.AppendProgress(ctx, "u1", ProgressEntry{Date: time.Now(), WeightKg: 70})
		require.Error(t, err)
		assert.False(t, errors.Is(err, resilience.ErrCircuitOpen))
	}

	_, err := s.ListProgress(ctx, "u1", 0)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestProfileSnapshotBadPayload(t *testing.T) {
	_, err := ProfileSnapshot{Payload: []byte(`{"age":"old"}`)}.Profile()
	assert.Error(t, err)
}
