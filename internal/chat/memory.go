package chat

import (
	"context"
	"sync"
	"time"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MemoryStore keeps per-session conversation history so follow-up questions
// carry context. Sessions expire; the store is best-effort.
type MemoryStore interface {
	History(ctx context.Context, sessionID string) ([]Message, error)
	Append(ctx context.Context, sessionID string, messages ...Message) error
}

const (
	sessionTTL        = 30 * time.Minute
	maxSessionHistory = 20
)

// SessionCache is the slice of the cache wrapper the Redis-backed store
// needs.
type SessionCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type redisMemoryStore struct {
	cache SessionCache
}

func NewRedisMemoryStore(cache SessionCache) MemoryStore {
	return &redisMemoryStore{cache: cache}
}

func sessionKey(sessionID string) string {
	return "chat:session:" + sessionID
}

func (s *redisMemoryStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	var history []Message
	ok, err := s.cache.GetJSON(ctx, sessionKey(sessionID), &history)
	if err != nil || !ok {
		return nil, err
	}
	return history, nil
}

func (s *redisMemoryStore) Append(ctx context.Context, sessionID string, messages ...Message) error {
	history, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}
	history = capHistory(append(history, messages...))
	return s.cache.SetJSON(ctx, sessionKey(sessionID), history, sessionTTL)
}

// inProcessMemoryStore backs sessions when Redis is unavailable. Entries are
// pruned lazily on access.
type inProcessMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	history   []Message
	expiresAt time.Time
}

func NewInProcessMemoryStore() MemoryStore {
	return &inProcessMemoryStore{sessions: make(map[string]*sessionEntry)}
}

func (s *inProcessMemoryStore) History(_ context.Context, sessionID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return append([]Message(nil), entry.history...), nil
}

func (s *inProcessMemoryStore) Append(_ context.Context, sessionID string, messages ...Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prune()
	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{}
		s.sessions[sessionID] = entry
	}
	entry.history = capHistory(append(entry.history, messages...))
	entry.expiresAt = time.Now().Add(sessionTTL)
	return nil
}

func (s *inProcessMemoryStore) prune() {
	now := time.Now()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func capHistory(history []Message) []Message {
	if len(history) > maxSessionHistory {
		history = history[len(history)-maxSessionHistory:]
	}
	return history
}
