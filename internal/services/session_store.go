package services

import (
	"sync"
	"time"
)

// ChatMessage is one entry in a conversation transcript
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// SessionStats summarizes chat usage across all live sessions
type SessionStats struct {
	ActiveSessions int `json:"active_sessions"`
	TotalMessages  int `json:"total_messages"`
}

// SessionStore keeps per-session conversation transcripts. Implementations
// must be safe for concurrent use and must not grow without bound.
type SessionStore interface {
	// Append adds a message to the session's transcript
	Append(sessionID string, msg ChatMessage)
	// History returns the session's transcript, oldest first
	History(sessionID string) []ChatMessage
	// Clear removes the session's transcript
	Clear(sessionID string)
	// Stats returns usage counters over live sessions
	Stats() SessionStats
}

type chatSession struct {
	messages []ChatMessage
	lastSeen time.Time
}

// memorySessionStore is an in-memory SessionStore with TTL-based eviction.
// Sessions idle longer than the TTL are swept on the next access.
type memorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*chatSession
	now      func() time.Time
}

// NewMemorySessionStore creates an in-memory session store whose sessions
// expire after the given idle TTL
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]*chatSession),
		now:      time.Now,
	}
}

func (s *memorySessionStore) Append(sessionID string, msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = &chatSession{}
		s.sessions[sessionID] = session
	}
	session.messages = append(session.messages, msg)
	session.lastSeen = s.now()
}

func (s *memorySessionStore) History(sessionID string) []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	session.lastSeen = s.now()
	history := make([]ChatMessage, len(session.messages))
	copy(history, session.messages)
	return history
}

func (s *memorySessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *memorySessionStore) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	stats := SessionStats{ActiveSessions: len(s.sessions)}
	for _, session := range s.sessions {
		stats.TotalMessages += len(session.messages)
	}
	return stats
}

func (s *memorySessionStore) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
