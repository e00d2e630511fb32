package storage

import (
	"sort"
	"sync"

	"github.com/labelwise/eatability/internal/models"
)

// SessionStore keeps analysis sessions in memory for the life of the server
type SessionStore struct {
	sessions map[string]*models.AnalysisSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.AnalysisSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.AnalysisSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.AnalysisSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// List returns all sessions, newest first
func (s *SessionStore) List() []*models.AnalysisSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.AnalysisSession, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Delete removes a session and reports whether it existed
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}
