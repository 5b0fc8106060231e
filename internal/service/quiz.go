package service

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// StageSize is the number of catalog roots in one challenge stage.
const StageSize = 10

// QuizConfig holds quiz sizes.
type QuizConfig struct {
	ChallengeQuestions int // questions per challenge session
	LearnGoal          int // roots per learn session
}

// DefaultQuizConfig returns the default quiz sizes.
func DefaultQuizConfig() QuizConfig {
	return QuizConfig{
		ChallengeQuestions: 10,
		LearnGoal:          5,
	}
}

// AnswerOutcome is the result of answering a question in a session.
type AnswerOutcome struct {
	Session      entities.QuizSession
	Result       entities.AnswerResult
	Progress     *entities.LearnerProgress // updated record after a correct answer, nil otherwise
	Achievements []entities.Achievement    // unlocked by this answer
}

// FinishOutcome is the result of finishing a session.
type FinishOutcome struct {
	Summary      entities.Summary
	Progress     *entities.LearnerProgress
	Achievements []entities.Achievement
}

// QuizService runs quiz sessions and records their effect on progress.
type QuizService struct {
	catalog   RootRepository
	progress  ProgressStore
	generator *OptionGenerator
	cfg       QuizConfig
	now       func() time.Time
	newSeed   func() (int64, error)
	logger    *zap.Logger
}

// NewQuizService creates a QuizService.
func NewQuizService(
	catalog RootRepository,
	progress ProgressStore,
	cfg QuizConfig,
	logger *zap.Logger,
) *QuizService {
	def := DefaultQuizConfig()
	if cfg.ChallengeQuestions <= 0 {
		cfg.ChallengeQuestions = def.ChallengeQuestions
	}
	if cfg.LearnGoal <= 0 {
		cfg.LearnGoal = def.LearnGoal
	}

	return &QuizService{
		catalog:   catalog,
		progress:  progress,
		generator: NewOptionGenerator(catalog.GetAll()),
		cfg:       cfg,
		now:       time.Now,
		newSeed:   newSeed,
		logger:    logger,
	}
}

// SetClock replaces the time source.
func (s *QuizService) SetClock(now func() time.Time) {
	s.now = now
}

// SetSeedSource replaces the random seed source of new sessions.
func (s *QuizService) SetSeedSource(fn func() (int64, error)) {
	s.newSeed = fn
}

// StageCount returns the number of challenge stages in the catalog.
func (s *QuizService) StageCount() int {
	return (s.catalog.Len() + StageSize - 1) / StageSize
}

// StartChallenge creates and starts a challenge session over the roots of a stage.
func (s *QuizService) StartChallenge(ctx context.Context, userID int64, stage int) (entities.QuizSession, *entities.Question, error) {
	subset, err := s.Stage(stage)
	if err != nil {
		return entities.QuizSession{}, nil, err
	}

	seed, err := s.newSeed()
	if err != nil {
		return entities.QuizSession{}, nil, err
	}

	questions, err := s.generator.GenerateQuestions(subset, s.cfg.ChallengeQuestions, rand.New(rand.NewSource(seed)))
	if err != nil {
		return entities.QuizSession{}, nil, fmt.Errorf("generate questions: %w", err)
	}

	session := entities.NewQuizSession(uuid.NewString(), userID, entities.ModeChallenge, questions)
	session.Stage = stage
	session.Seed = seed

	session, first, err := session.Start(s.now())
	if err != nil {
		return entities.QuizSession{}, nil, err
	}

	s.logger.Info("challenge started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Int("stage", stage),
		zap.Int64("seed", seed),
	)

	return session, first, nil
}

// Stage returns the roots of a challenge stage, numbered from 1.
func (s *QuizService) Stage(stage int) ([]*entities.Root, error) {
	if stage < 1 || stage > s.StageCount() {
		return nil, &entities.NotFoundError{Kind: "stage", ID: stage}
	}

	all := s.catalog.GetAll()
	start := (stage - 1) * StageSize
	end := min(start+StageSize, len(all))

	return all[start:end], nil
}

// StartLearning creates and starts a learn session over the next roots
// after the resume pointer, wrapping around the catalog.
func (s *QuizService) StartLearning(ctx context.Context, userID int64) (entities.QuizSession, *entities.Question, error) {
	all := s.catalog.GetAll()
	if len(all) == 0 {
		return entities.QuizSession{}, nil, entities.NewValidationError("catalog", "catalog is empty")
	}

	seed, err := s.newSeed()
	if err != nil {
		return entities.QuizSession{}, nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	p := s.progress.Load(ctx, userID)
	start := p.CurrentItemIndex % len(all)

	goal := min(s.cfg.LearnGoal, len(all))
	questions := make([]entities.Question, 0, goal)
	for i := 0; i < goal; i++ {
		root := all[(start+i)%len(all)]
		questions = append(questions, s.generator.ItemQuestion(root, rng))
	}

	session := entities.NewQuizSession(uuid.NewString(), userID, entities.ModeLearn, questions)
	session.Seed = seed

	session, first, err := session.Start(s.now())
	if err != nil {
		return entities.QuizSession{}, nil, err
	}

	s.logger.Info("learning started",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Int("start_index", start),
	)

	return session, first, nil
}

// Answer evaluates choice. A correct answer masters the root and may unlock
// achievements. Failing to persist that is logged and does not stop the quiz.
func (s *QuizService) Answer(ctx context.Context, userID int64, session entities.QuizSession, choice int) (*AnswerOutcome, error) {
	next, result, err := session.Answer(choice, s.now())
	if err != nil {
		return nil, err
	}

	out := &AnswerOutcome{Session: next, Result: result}
	if !result.IsCorrect {
		return out, nil
	}

	q := session.CurrentQuestion()
	progress, err := s.progress.MarkMastered(ctx, userID, q.ItemID)
	if err != nil {
		s.logger.Error("failed to mark root as mastered",
			zap.Int64("user_id", userID),
			zap.Int("root_id", q.ItemID),
			zap.Error(err),
		)
		return out, nil
	}
	out.Progress = progress

	unlocked, err := s.progress.CheckAchievements(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check achievements",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return out, nil
	}
	out.Achievements = unlocked

	return out, nil
}

// Retry re-opens a wrongly answered learn question.
func (s *QuizService) Retry(session entities.QuizSession) (entities.QuizSession, *entities.Question, error) {
	next, err := session.Retry()
	if err != nil {
		return session, nil, err
	}
	return next, next.CurrentQuestion(), nil
}

// Advance moves to the next question. In learn mode the resume pointer
// moves past the root just learned.
func (s *QuizService) Advance(ctx context.Context, userID int64, session entities.QuizSession) (entities.QuizSession, *entities.Question, error) {
	current := session.CurrentQuestion()

	next, q, err := session.Advance(s.now())
	if err != nil {
		return session, nil, err
	}

	if session.Mode == entities.ModeLearn && current != nil {
		if idx, ok := s.indexOf(current.ItemID); ok {
			resume := (idx + 1) % s.catalog.Len()
			if err := s.progress.SetCurrentItemIndex(ctx, userID, resume); err != nil {
				s.logger.Error("failed to save resume pointer",
					zap.Int64("user_id", userID),
					zap.Int("index", resume),
					zap.Error(err),
				)
			}
		}
	}

	return next, q, nil
}

// Finish records a complete session and returns its summary.
func (s *QuizService) Finish(ctx context.Context, userID int64, session entities.QuizSession) (*FinishOutcome, error) {
	if session.Status != entities.StatusComplete {
		return nil, entities.ErrSessionNotComplete
	}

	summary := session.Summarize()
	progress, unlocked, err := s.progress.RecordSession(ctx, userID, summary, session.Mode)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	return &FinishOutcome{
		Summary:      summary,
		Progress:     progress,
		Achievements: unlocked,
	}, nil
}

func (s *QuizService) indexOf(rootID int) (int, bool) {
	for i, r := range s.catalog.GetAll() {
		if r.ID == rootID {
			return i, true
		}
	}
	return 0, false
}

// newSeed generates a random seed using crypto/rand.
func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
