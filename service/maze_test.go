package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMazeService(t *testing.T, repo *memMazeRepo, cache *memCache, opts *MazeOptions) *MazeService {
	t.Helper()
	var ms *MazeService
	var err error
	if cache == nil {
		ms, err = NewMazeService(repo, nil, testLogger(t), opts)
	} else {
		ms, err = NewMazeService(repo, cache, testLogger(t), opts)
	}
	require.NoError(t, err)
	return ms
}

func seedPtr(s int64) *int64 {
	return &s
}

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(nil, nil, testLogger(t), nil)
	assert.ErrorIs(t, err, ErrNilDependency)

	ms := newTestMazeService(t, newMemMazeRepo(), nil, nil)
	assert.Equal(t, defaultMaxDimension, ms.opts.MaxDimension)
	assert.Equal(t, defaultCachePrefix, ms.opts.CachePrefix)
	assert.NotNil(t, ms.opts.Generator)
	assert.NotNil(t, ms.opts.Recorder)

	opts := &MazeOptions{DelayMs: 0}
	ms = newTestMazeService(t, newMemMazeRepo(), nil, opts)
	assert.Equal(t, 0, ms.opts.DelayMs)
	assert.Equal(t, MazeOptions{}, *opts, "caller options must not be modified")

	ms = newTestMazeService(t, newMemMazeRepo(), nil, &MazeOptions{DelayMs: -1})
	assert.Equal(t, defaultDelayMs, ms.opts.DelayMs)
}

func TestMazeServiceGenerate(t *testing.T) {
	ms := newTestMazeService(t, newMemMazeRepo(), nil, &MazeOptions{MaxDimension: 15})
	ctx := context.Background()

	t.Run("seeded", func(t *testing.T) {
		m, err := ms.Generate(ctx, 10, 10, seedPtr(4))
		require.NoError(t, err)
		want, err := maze.NewSeeded(10, 10, 4)
		require.NoError(t, err)
		assert.Equal(t, want.String(), m.String())
	})

	t.Run("too large", func(t *testing.T) {
		_, err := ms.Generate(ctx, 16, 5, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ms.Generate(ctx, 0, 5, nil)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})

	t.Run("cancelled before start", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ms.Generate(cancelled, 5, 5, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMazeServiceGenerateTimeout(t *testing.T) {
	gen := &blockingGenerator{release: make(chan struct{})}
	defer close(gen.release)
	ms := newTestMazeService(t, newMemMazeRepo(), nil, &MazeOptions{Generator: gen})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := ms.Generate(ctx, 5, 5, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMazeServicePreview(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded previews are cached", func(t *testing.T) {
		cache := newMemCache()
		ms := newTestMazeService(t, newMemMazeRepo(), cache, nil)

		first, err := ms.Preview(ctx, 10, 10, seedPtr(8))
		require.NoError(t, err)
		second, err := ms.Preview(ctx, 11, 11, seedPtr(8))
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, cache.locks)
		assert.Contains(t, cache.entries, "maze:preview:11x11:8")
	})

	t.Run("unseeded previews skip the cache", func(t *testing.T) {
		cache := newMemCache()
		ms := newTestMazeService(t, newMemMazeRepo(), cache, nil)

		record, err := ms.Preview(ctx, 7, 7, nil)
		require.NoError(t, err)
		assert.Len(t, record.Rows, 7)
		assert.Zero(t, cache.gets)
		assert.Zero(t, cache.sets)
	})

	t.Run("lock failure still generates", func(t *testing.T) {
		cache := newMemCache()
		cache.lockErr = errors.New("redis down")
		ms := newTestMazeService(t, newMemMazeRepo(), cache, nil)

		record, err := ms.Preview(ctx, 9, 9, seedPtr(1))
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.Seed)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("warm cache does not lift the size limit", func(t *testing.T) {
		cache := newMemCache()
		ms := newTestMazeService(t, newMemMazeRepo(), cache, &MazeOptions{MaxDimension: 100})

		_, err := ms.Preview(ctx, 101, 101, seedPtr(6))
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)

		record, err := ms.Preview(ctx, 100, 100, seedPtr(6))
		require.NoError(t, err)
		assert.Equal(t, 101, record.Width)
		require.Contains(t, cache.entries, "maze:preview:101x101:6")

		record, err = ms.Preview(ctx, 101, 101, seedPtr(6))
		assert.Nil(t, record)
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("concurrent previews", func(t *testing.T) {
		cache := newMemCache()
		ms := newTestMazeService(t, newMemMazeRepo(), cache, nil)

		const callers = 8
		rows := make([][]string, callers)
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for n := 0; n < callers; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				record, err := ms.Preview(ctx, 15, 15, seedPtr(4))
				errs[n] = err
				if err == nil {
					rows[n] = record.Rows
				}
			}(n)
		}
		wg.Wait()

		for n := 0; n < callers; n++ {
			require.NoError(t, errs[n])
			assert.Equal(t, rows[0], rows[n])
		}
		assert.Contains(t, cache.entries, "maze:preview:15x15:4")
		assert.GreaterOrEqual(t, cache.gets, callers)
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		ms := newTestMazeService(t, newMemMazeRepo(), newMemCache(), nil)
		_, err := ms.Preview(ctx, -1, 9, seedPtr(1))
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	})
}

func TestMazeServiceReplay(t *testing.T) {
	ms := newTestMazeService(t, newMemMazeRepo(), nil, &MazeOptions{DelayMs: 15})

	replay, err := ms.Replay(context.Background(), 9, 7, seedPtr(21))
	require.NoError(t, err)
	assert.Equal(t, 9, replay.Width)
	assert.Equal(t, 7, replay.Height)
	assert.Equal(t, int64(21), replay.Seed)
	assert.Equal(t, 15, replay.DelayMs)

	frame, err := maze.Replay(replay.Width, replay.Height, replay.Steps)
	require.NoError(t, err)
	want, err := maze.NewSeeded(9, 7, 21)
	require.NoError(t, err)
	assert.Equal(t, want.Rows(), frame.Rows())
}

func TestMazeServiceStorage(t *testing.T) {
	ctx := context.Background()
	repo := newMemMazeRepo()
	ms := newTestMazeService(t, repo, nil, nil)
	owner, stranger := uuid.New(), uuid.New()

	record, err := ms.Create(ctx, owner, "spiral", 13, 13, seedPtr(2))
	require.NoError(t, err)
	assert.Equal(t, owner, record.OwnerID)
	assert.Equal(t, "spiral", record.Name)

	got, err := ms.ByID(ctx, owner, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	list, err := ms.ByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	t.Run("invalid name", func(t *testing.T) {
		_, err := ms.Create(ctx, owner, "", 5, 5, nil)
		assert.ErrorIs(t, err, dmn.ErrInvalidMazeName)
	})

	t.Run("save failure", func(t *testing.T) {
		failing := newMemMazeRepo()
		failing.saveErr = errors.New("mongo down")
		svc := newTestMazeService(t, failing, nil, nil)
		_, err := svc.Create(ctx, owner, "x", 5, 5, nil)
		assert.Error(t, err)
	})

	t.Run("read by stranger", func(t *testing.T) {
		got, err := ms.ByID(ctx, stranger, record.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, dmn.ErrNotOwner)
	})

	t.Run("delete by stranger", func(t *testing.T) {
		err := ms.Delete(ctx, stranger, record.ID)
		assert.ErrorIs(t, err, dmn.ErrNotOwner)
	})

	t.Run("delete by owner", func(t *testing.T) {
		require.NoError(t, ms.Delete(ctx, owner, record.ID))
		_, err := ms.ByID(ctx, owner, record.ID)
		assert.ErrorIs(t, err, dmn.ErrMazeNotFound)
		assert.ErrorIs(t, ms.Delete(ctx, owner, record.ID), dmn.ErrMazeNotFound)
	})
}
