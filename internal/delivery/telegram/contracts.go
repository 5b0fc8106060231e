package telegram

import (
	"context"
	"time"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
	"github.com/aliskhannn/wordroots-bot/internal/service"
	"github.com/aliskhannn/wordroots-bot/internal/storage"
)

type RootService interface {
	All() []*entities.Root
	GetByID(id int) (*entities.Root, error)
	Filter(kind entities.RootKind, query string) []*entities.Root
}

type ProgressService interface {
	Dashboard(ctx context.Context, userID int64) *entities.Dashboard
	ExportSnapshot(ctx context.Context, userID int64) ([]byte, error)
	ImportSnapshot(ctx context.Context, userID int64, blob []byte) error
	Reset(ctx context.Context, userID int64) error
}

type QuizService interface {
	StageCount() int
	StartChallenge(ctx context.Context, userID int64, stage int) (entities.QuizSession, *entities.Question, error)
	StartLearning(ctx context.Context, userID int64) (entities.QuizSession, *entities.Question, error)
	Answer(ctx context.Context, userID int64, session entities.QuizSession, choice int) (*service.AnswerOutcome, error)
	Retry(session entities.QuizSession) (entities.QuizSession, *entities.Question, error)
	Advance(ctx context.Context, userID int64, session entities.QuizSession) (entities.QuizSession, *entities.Question, error)
	Finish(ctx context.Context, userID int64, session entities.QuizSession) (*service.FinishOutcome, error)
}

type QuizStorage interface {
	Store(session entities.QuizSession)
	Get(userID int64) (entities.QuizSession, bool)
	GetByID(userID int64, sessionID string) (entities.QuizSession, bool)
	Delete(userID int64)
}

type ReminderStorage interface {
	UpsertAndGetPrev(userID, chatID int64, messageID int, sentAt time.Time) (storage.ReminderMessage, bool)
	Delete(userID int64)
}
