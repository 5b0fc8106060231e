package storage

import (
	"sync"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// QuizStorage provides in-memory storage for the active quiz session of each user.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[int64]entities.QuizSession
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[int64]entities.QuizSession),
	}
}

// Store saves the session as the active session of its user.
func (s *QuizStorage) Store(session entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session
}

// Get retrieves the active session of a user.
func (s *QuizStorage) Get(userID int64) (entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// GetByID retrieves the active session of a user only if its id matches.
// Buttons of an abandoned session carry a stale id and are rejected here.
func (s *QuizStorage) GetByID(userID int64, sessionID string) (entities.QuizSession, bool) {
	session, ok := s.Get(userID)
	if !ok || session.ID != sessionID {
		return entities.QuizSession{}, false
	}
	return session, true
}

// Delete removes the active session of a user.
func (s *QuizStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
