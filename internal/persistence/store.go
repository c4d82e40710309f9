package persistence

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Persisted state lives under three independent keys, each holding one
// whole JSON value that is overwritten in full on every mutation.
const (
	KeySession   = "session-auth"
	KeyDirectory = "member-directory"
	KeyAssets    = "asset-collection"
)

// Store is the opaque key-value persistence used by the repositories.
// Get returns an empty value and no error for an absent key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Redis-backed Store.
func NewRedisStore(r *Redis) Store {
	return &redisStore{client: r.Client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// MemoryStore is an in-process Store used by tests and redis-less runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	s.values[key] = buf
	return nil
}
