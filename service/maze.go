package service

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/beka-birhanu/backtrack-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 101
	defaultDelayMs      = 30
	defaultCachePrefix  = "maze"
	previewKeyFmt       = "%s:preview:%dx%d:%d"
)

var (
	ErrNilDependency = errors.New("missing required dependency")
)

// MazeOptions configures a MazeService. Zero values fall back to defaults,
// except DelayMs where zero means no pacing and only a negative value is
// replaced.
type MazeOptions struct {
	Generator    i.MazeGenerator // Plain generator, built from MaxDimension when nil
	Recorder     i.MazeGenerator // Step-recording generator, built from MaxDimension when nil
	MaxDimension int
	DelayMs      int
	CachePrefix  string
}

// MazeService generates mazes on worker goroutines and manages saved ones.
type MazeService struct {
	repo   i.MazeRepo
	cache  i.MazeCache
	logger i.Logger
	opts   *MazeOptions
}

var _ i.MazeService = &MazeService{}

// NewMazeService wires a MazeService. cache may be nil, in which case
// previews are always generated.
func NewMazeService(repo i.MazeRepo, cache i.MazeCache, logger i.Logger, opts *MazeOptions) (*MazeService, error) {
	if repo == nil || logger == nil {
		return nil, ErrNilDependency
	}

	o := MazeOptions{}
	if opts != nil {
		o = *opts
	}
	opts = &o

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	if opts.DelayMs < 0 {
		opts.DelayMs = defaultDelayMs
	}

	if opts.CachePrefix == "" {
		opts.CachePrefix = defaultCachePrefix
	}

	if opts.Generator == nil {
		opts.Generator = maze.NewGenerator(&maze.Options{MaxDimension: opts.MaxDimension})
	}

	if opts.Recorder == nil {
		opts.Recorder = maze.NewGenerator(&maze.Options{MaxDimension: opts.MaxDimension, RecordSteps: true})
	}

	return &MazeService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		opts:   opts,
	}, nil
}

// Generate builds a maze without storing it.
func (ms *MazeService) Generate(ctx context.Context, width, height int, seed *int64) (*maze.Maze, error) {
	return ms.run(ctx, ms.opts.Generator, width, height, seed)
}

// run executes a generator on its own goroutine and waits for the one-shot
// result or for ctx to end.
func (ms *MazeService) run(ctx context.Context, g i.MazeGenerator, width, height int, seed *int64) (*maze.Maze, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		maze *maze.Maze
		err  error
	}
	done := make(chan result, 1)
	go func() {
		m, err := g.Generate(width, height, seed)
		done <- result{maze: m, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			ms.logger.Warning(fmt.Sprintf("Generating %dx%d maze: %s", width, height, r.err))
			return nil, r.err
		}
		ms.logger.Info(fmt.Sprintf("Generated %dx%d maze: seed=%d", r.maze.Width, r.maze.Height, r.maze.Seed))
		return r.maze, nil
	case <-ctx.Done():
		ms.logger.Warning(fmt.Sprintf("Generating %dx%d maze abandoned: %s", width, height, ctx.Err()))
		return nil, ctx.Err()
	}
}

// Preview returns an unsaved maze. Seeded previews go through the cache.
func (ms *MazeService) Preview(ctx context.Context, width, height int, seed *int64) (*dmn.MazeRecord, error) {
	if seed == nil || ms.cache == nil {
		m, err := ms.Generate(ctx, width, height, seed)
		if err != nil {
			return nil, err
		}
		return dmn.Snapshot(m), nil
	}

	// The cache key is normalized, so the raw request is bounded before any
	// lookup or 101 could be served from an entry stored for 100.
	if max(width, height) > ms.opts.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", maze.ErrInvalidDimensions, width, height, ms.opts.MaxDimension)
	}

	// Normalizing first lets 10x10 and 11x11 share an entry.
	w, h, err := maze.Normalize(width, height)
	if err != nil {
		return nil, err
	}
	key := ms.previewKey(w, h, *seed)

	if record, ok := ms.cached(ctx, key); ok {
		return record, nil
	}

	unlock, err := ms.cache.Lock(ctx, key)
	if err != nil {
		ms.logger.Warning(fmt.Sprintf("Locking preview %s: %s", key, err))
	} else {
		defer unlock()
		if record, ok := ms.cached(ctx, key); ok {
			return record, nil
		}
	}

	m, err := ms.Generate(ctx, width, height, seed)
	if err != nil {
		return nil, err
	}

	record := dmn.Snapshot(m)
	if err := ms.cache.Set(ctx, key, record); err != nil {
		ms.logger.Warning(fmt.Sprintf("Caching preview %s: %s", key, err))
	}
	return record, nil
}

func (ms *MazeService) cached(ctx context.Context, key string) (*dmn.MazeRecord, bool) {
	record, err := ms.cache.Get(ctx, key)
	if err == nil {
		return record, true
	}
	if !errors.Is(err, i.ErrCacheMiss) {
		ms.logger.Warning(fmt.Sprintf("Reading preview %s: %s", key, err))
	}
	return nil, false
}

func (ms *MazeService) previewKey(width, height int, seed int64) string {
	return fmt.Sprintf(previewKeyFmt, ms.opts.CachePrefix, width, height, seed)
}

// Replay generates a maze with step recording for paced rendering.
func (ms *MazeService) Replay(ctx context.Context, width, height int, seed *int64) (*i.Replay, error) {
	m, err := ms.run(ctx, ms.opts.Recorder, width, height, seed)
	if err != nil {
		return nil, err
	}

	return &i.Replay{
		Width:   m.Width,
		Height:  m.Height,
		Seed:    m.Seed,
		DelayMs: ms.opts.DelayMs,
		Steps:   m.Steps(),
	}, nil
}

// Create generates a maze and saves it for ownerID.
func (ms *MazeService) Create(ctx context.Context, ownerID uuid.UUID, name string, width, height int, seed *int64) (*dmn.MazeRecord, error) {
	m, err := ms.Generate(ctx, width, height, seed)
	if err != nil {
		return nil, err
	}

	record, err := dmn.NewMazeRecord(uuid.New(), ownerID, name, m)
	if err != nil {
		return nil, err
	}

	if err := ms.repo.Save(ctx, record); err != nil {
		ms.logger.Error(fmt.Sprintf("Saving maze %s: %s", record.ID, err))
		return nil, err
	}

	ms.logger.Info(fmt.Sprintf("Maze saved: ID=%s Owner=%s", record.ID, ownerID))
	return record, nil
}

// ByID returns a maze saved by ownerID. Another user's maze yields
// dmn.ErrNotOwner.
func (ms *MazeService) ByID(ctx context.Context, ownerID, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, err := ms.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.OwnerID != ownerID {
		return nil, dmn.ErrNotOwner
	}
	return record, nil
}

// ByOwner lists the mazes saved by ownerID.
func (ms *MazeService) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	return ms.repo.ByOwner(ctx, ownerID)
}

// Delete removes a maze owned by ownerID.
func (ms *MazeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := ms.ByID(ctx, ownerID, id); err != nil {
		return err
	}

	if err := ms.repo.Delete(ctx, id); err != nil {
		return err
	}

	ms.logger.Info(fmt.Sprintf("Maze deleted: ID=%s", id))
	return nil
}
