package repositories

import (
	"context"
	"sync"
	"time"
)

type memoryToken struct {
	userID    int64
	expiresAt time.Time
}

// MemoryTokenRepository keeps tokens in process memory. Used when Redis is
// not configured; tokens do not survive a restart.
type MemoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
}

func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: map[string]memoryToken{}}
}

func (r *MemoryTokenRepository) Put(_ context.Context, purpose, token string, userID int64, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tokenKey(purpose, token)] = memoryToken{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (r *MemoryTokenRepository) Pop(_ context.Context, purpose, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tokenKey(purpose, token)
	entry, ok := r.tokens[key]
	if !ok {
		return 0, nil
	}
	delete(r.tokens, key)
	if time.Now().After(entry.expiresAt) {
		return 0, nil
	}
	return entry.userID, nil
}
