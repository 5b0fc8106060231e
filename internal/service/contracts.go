package service

import (
	"context"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// RootRepository is the read-only content catalog.
type RootRepository interface {
	GetAll() []*entities.Root
	GetByID(id int) (*entities.Root, error)
	Len() int
}

// ProgressStore is the learner progress store used by the quiz and
// reminder services.
type ProgressStore interface {
	Load(ctx context.Context, userID int64) *entities.LearnerProgress
	MarkMastered(ctx context.Context, userID int64, itemID int) (*entities.LearnerProgress, error)
	CheckAchievements(ctx context.Context, userID int64) ([]entities.Achievement, error)
	RecordSession(ctx context.Context, userID int64, summary entities.Summary, mode entities.QuizMode) (*entities.LearnerProgress, []entities.Achievement, error)
	SetCurrentItemIndex(ctx context.Context, userID int64, index int) error
	Profiles(ctx context.Context) ([]int64, error)
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendReminder(userID int64, payload entities.ReminderPayload) error
}
