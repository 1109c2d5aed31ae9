package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks which session ids are live. Deleting an id is what
// makes logout stick before the token's own expiry.
type SessionStore interface {
	Put(ctx context.Context, id string, ttl time.Duration) error
	Alive(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is an in-process session store for dev and tests.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expires: make(map[string]time.Time)}
}

// Put registers a session id with a TTL.
func (s *MemoryStore) Put(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[id] = time.Now().Add(ttl)
	return nil
}

// Alive reports whether the id is present and unexpired.
func (s *MemoryStore) Alive(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[id]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(s.expires, id)
		return false, nil
	}
	return true, nil
}

// Delete invalidates the id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expires, id)
	return nil
}

const redisSessionPrefix = "attendance:session:"

// RedisStore keeps session liveness in redis so every web replica sees the
// same logouts.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a store over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put registers a session id with a TTL.
func (s *RedisStore) Put(ctx context.Context, id string, ttl time.Duration) error {
	return s.client.Set(ctx, redisSessionPrefix+id, "1", ttl).Err()
}

// Alive reports whether the id is still present.
func (s *RedisStore) Alive(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, redisSessionPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete invalidates the id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisSessionPrefix+id).Err()
}
