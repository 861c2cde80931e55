package libs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore persists the opaque per-visitor key/value sets behind
// server-side sessions. The cart and checkout code never talk to it
// directly; they go through Session.
type SessionStore interface {
	Load(ctx context.Context, id string) (map[string]json.RawMessage, error)
	Save(ctx context.Context, id string, values map[string]json.RawMessage) error
	Delete(ctx context.Context, id string) error
}

const redisSessionPrefix = "session:"

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	raw, err := s.client.Get(ctx, redisSessionPrefix+id).Bytes()
	if err == redis.Nil {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &values); err != nil {
		// corrupted session payload, start fresh
		return map[string]json.RawMessage{}, nil
	}
	return values, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, id string, values map[string]json.RawMessage) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisSessionPrefix+id, raw, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisSessionPrefix+id).Err()
}

// MemorySessionStore keeps sessions in process memory. Used in tests and as
// a degraded fallback when Redis is unreachable at startup.
type MemorySessionStore struct {
	mu   sync.Mutex
	data map[string]map[string]json.RawMessage
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{data: map[string]map[string]json.RawMessage{}}
}

func (s *MemorySessionStore) Load(ctx context.Context, id string) (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]json.RawMessage{}
	for k, v := range s.data[id] {
		values[k] = v
	}
	return values, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, id string, values map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := map[string]json.RawMessage{}
	for k, v := range values {
		copied[k] = v
	}
	s.data[id] = copied
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Session is one visitor's server-side session. Values are kept as raw JSON
// and only written back to the store when something actually changed.
type Session struct {
	ID       string
	store    SessionStore
	values   map[string]json.RawMessage
	modified bool
}

// OpenSession loads the session with the given ID, or starts a fresh one
// (with a new random ID) when the ID is empty.
func OpenSession(ctx context.Context, store SessionStore, id string) (*Session, error) {
	if id == "" {
		return &Session{
			ID:     uuid.NewString(),
			store:  store,
			values: map[string]json.RawMessage{},
		}, nil
	}

	values, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, store: store, values: values}, nil
}

// Get unmarshals the value under key into v. Returns false when absent.
func (s *Session) Get(key string, v interface{}) bool {
	raw, ok := s.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (s *Session) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.values[key] = raw
	s.modified = true
	return nil
}

func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.modified = true
	}
}

// Pop reads and removes key in one step, for values meant to be read once.
func (s *Session) Pop(key string, v interface{}) bool {
	ok := s.Get(key, v)
	if ok {
		s.Delete(key)
	}
	return ok
}

func (s *Session) Modified() bool {
	return s.modified
}

// Save writes the session back to the store. No-op unless modified.
func (s *Session) Save(ctx context.Context) error {
	if !s.modified {
		return nil
	}
	if err := s.store.Save(ctx, s.ID, s.values); err != nil {
		return err
	}
	s.modified = false
	return nil
}
