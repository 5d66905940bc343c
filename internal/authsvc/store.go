package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// StoredSession is a session as persisted. RefreshToken is sealed.
type StoredSession struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionStore persists sessions by ID with an expiry.
type SessionStore interface {
	Put(ctx context.Context, id string, s StoredSession, ttl time.Duration) error
	// Get returns ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*StoredSession, error)
	// TTL returns the remaining lifetime, zero when the session is gone.
	TTL(ctx context.Context, id string) (time.Duration, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions as JSON under session:<id>.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore connects to addr and pings it.
func NewRedisStore(ctx context.Context, addr, password string) (*RedisStore, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisStoreFromClient(rdb), rdb, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Put(ctx context.Context, id string, s StoredSession, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*StoredSession, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s StoredSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) TTL(ctx context.Context, id string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read session ttl: %w", err)
	}
	// -1 no expiry, -2 missing
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

type memoryEntry struct {
	session StoredSession
	expires time.Time
}

// MemoryStore is a SessionStore for a single instance without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (m *MemoryStore) Put(_ context.Context, id string, s StoredSession, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{session: s, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

func (m *MemoryStore) TTL(_ context.Context, id string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(id)
	if !ok {
		return 0, nil
	}
	return e.expires.Sub(m.now()), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// lookup drops expired entries. Callers hold mu.
func (m *MemoryStore) lookup(id string) (memoryEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}
