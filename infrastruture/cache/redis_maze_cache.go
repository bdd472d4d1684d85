package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix = ":lock"
	lockExpiry = 5 * time.Second
)

// RedisMazeCache keeps maze previews in Redis with a TTL.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.MazeCache = &RedisMazeCache{}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (*RedisMazeCache, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}

	pool := goredis.NewPool(client)
	return &RedisMazeCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Get loads a preview, returning i.ErrCacheMiss when key is absent.
func (c *RedisMazeCache) Get(ctx context.Context, key string) (*dmn.MazeRecord, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	return decodeRecord(key, raw, err)
}

// decodeRecord turns a raw GET reply into a record.
func decodeRecord(key string, raw []byte, err error) (*dmn.MazeRecord, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, i.ErrCacheMiss
		}
		return nil, err
	}

	var record dmn.MazeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decoding cached maze %s: %w", key, err)
	}
	return &record, nil
}

// Set stores a preview under key for the cache TTL.
func (c *RedisMazeCache) Set(ctx context.Context, key string, record *dmn.MazeRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Lock takes a distributed mutex on key so only one instance generates a
// given preview at a time.
func (c *RedisMazeCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(key+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}
