package storage

import (
	"sync"
	"time"
)

// ReminderMessage is the last streak reminder sent to a user.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers the last reminder per user so the bot can
// replace it and send at most one per day.
type ReminderStorage struct {
	mu       sync.RWMutex
	messages map[int64]ReminderMessage
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
	}
}

func (s *ReminderStorage) Get(userID int64) (ReminderMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[userID]
	return msg, ok
}

func (s *ReminderStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, userID)
}

// UpsertAndGetPrev stores the new reminder and returns the one it replaced.
func (s *ReminderStorage) UpsertAndGetPrev(userID, chatID int64, messageID int, sentAt time.Time) (prev ReminderMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[userID]

	s.messages[userID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    sentAt,
	}

	return prev, hadPrev
}
