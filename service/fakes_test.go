package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/logger"
	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/beka-birhanu/backtrack-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) i.Logger {
	t.Helper()
	l, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)
	return l
}

type memMazeRepo struct {
	sync.Mutex
	records map[uuid.UUID]*dmn.MazeRecord
	saveErr error
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{records: make(map[uuid.UUID]*dmn.MazeRecord)}
}

func (r *memMazeRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	r.Lock()
	defer r.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[record.ID] = record
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	r.Lock()
	defer r.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrMazeNotFound
	}
	return record, nil
}

func (r *memMazeRepo) ByOwner(_ context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	r.Lock()
	defer r.Unlock()
	var result []*dmn.MazeRecord
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].CreatedAt.After(result[b].CreatedAt) })
	return result, nil
}

func (r *memMazeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.records[id]; !ok {
		return dmn.ErrMazeNotFound
	}
	delete(r.records, id)
	return nil
}

type memUserRepo struct {
	sync.Mutex
	users map[uuid.UUID]*dmn.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(_ context.Context, user *dmn.User) error {
	r.Lock()
	defer r.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memUserRepo) ByUsername(_ context.Context, username string) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]*dmn.MazeRecord
	gets    int
	sets    int
	locks   int
	lockErr error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*dmn.MazeRecord)}
}

func (c *memCache) Get(_ context.Context, key string) (*dmn.MazeRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	record, ok := c.entries[key]
	if !ok {
		return nil, i.ErrCacheMiss
	}
	return record, nil
}

func (c *memCache) Set(_ context.Context, key string, record *dmn.MazeRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[key] = record
	return nil
}

func (c *memCache) Lock(_ context.Context, _ string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {}, nil
}

type fakeTokenizer struct {
	claims map[string]interface{}
}

func (f *fakeTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	f.claims = claims
	return fmt.Sprintf("token-%v", claims["userID"]), nil
}

func (f *fakeTokenizer) Decode(token string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// blockingGenerator never returns until release is closed.
type blockingGenerator struct {
	release chan struct{}
}

func (b *blockingGenerator) Generate(width, height int, seed *int64) (*maze.Maze, error) {
	<-b.release
	return maze.New(width, height)
}
