package session

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart; expired entries are pruned opportunistically on writes.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// Create starts a session for a user and returns the opaque token.
func (s *MemoryStore) Create(ctx context.Context, userID int64) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	s.sessions[token] = memorySession{
		userID:    userID,
		expiresAt: s.now().Add(TTL),
	}
	return token, nil
}

// Read resolves a token to a user id, renewing the inactivity deadline.
func (s *MemoryStore) Read(ctx context.Context, token string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return 0, false, nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, false, nil
	}

	sess.expiresAt = s.now().Add(TTL)
	s.sessions[token] = sess
	return sess.userID, true, nil
}

// Destroy ends a session.
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	s.prune()
	return nil
}

// prune drops expired sessions. Caller holds the lock.
func (s *MemoryStore) prune() {
	now := s.now()
	for token, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
