package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// MazeCache stores previews of seeded mazes, which are deterministic and so
// safe to share between requests.
type MazeCache interface {
	// Get returns ErrCacheMiss when key is absent.
	Get(ctx context.Context, key string) (*dmn.MazeRecord, error)
	Set(ctx context.Context, key string, record *dmn.MazeRecord) error

	// Lock acquires a lock on key shared by every instance using the cache.
	// The returned function releases it.
	Lock(ctx context.Context, key string) (func(), error)
}
