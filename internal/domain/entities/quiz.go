package entities

import (
	"fmt"
	"time"
)

// QuizMode is the kind of quiz session.
type QuizMode string

const (
	ModeLearn     QuizMode = "learn"     // one attached quiz per item, wrong answers are retried
	ModeChallenge QuizMode = "challenge" // fixed batch of generated questions
)

// SessionStatus is the lifecycle state of a quiz session.
type SessionStatus string

const (
	StatusNotStarted SessionStatus = "not_started"
	StatusInProgress SessionStatus = "in_progress"
	StatusComplete   SessionStatus = "complete"
)

// QuestionPhase tracks the current question while the session is in progress.
type QuestionPhase string

const (
	PhaseAwaitingAnswer QuestionPhase = "awaiting_answer"
	PhaseAnswered       QuestionPhase = "answered"
)

// Points awarded per correct answer.
const PointsPerCorrect = 10

// QuizSession is the transient state of one quiz run.
//
// It is a value: every operation returns the next session and leaves the
// receiver untouched, so callers can keep or discard states freely.
type QuizSession struct {
	ID             string
	UserID         int64
	Mode           QuizMode
	Stage          int   // challenge stage, 0 in learn mode
	Seed           int64 // seed the questions were generated with
	Questions      []Question
	Current        int // index into Questions
	Phase          QuestionPhase
	Status         SessionStatus
	CorrectAnswers int            // questions answered correctly on the first attempt
	Answers        []AnswerRecord // append-only
	StartedAt      time.Time
	CompletedAt    time.Time
}

// AnswerRecord is one answer given during a session. It is never persisted.
type AnswerRecord struct {
	ItemID         int
	SelectedOption int
	IsCorrect      bool
	AnsweredAt     time.Time
}

// NewQuizSession creates a session in the NotStarted state.
func NewQuizSession(id string, userID int64, mode QuizMode, questions []Question) QuizSession {
	qs := make([]Question, len(questions))
	copy(qs, questions)

	return QuizSession{
		ID:        id,
		UserID:    userID,
		Mode:      mode,
		Questions: qs,
		Status:    StatusNotStarted,
	}
}

// Total returns the number of questions in the session.
func (s QuizSession) Total() int {
	return len(s.Questions)
}

// CurrentQuestion returns the question under the cursor, or nil outside InProgress.
func (s QuizSession) CurrentQuestion() *Question {
	if s.Status != StatusInProgress || s.Current >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.Current]
	return &q
}

// LastAnswer returns the most recent answer record.
func (s QuizSession) LastAnswer() (AnswerRecord, bool) {
	if len(s.Answers) == 0 {
		return AnswerRecord{}, false
	}
	return s.Answers[len(s.Answers)-1], true
}

// Start moves a NotStarted session to InProgress and returns the first question.
func (s QuizSession) Start(now time.Time) (QuizSession, *Question, error) {
	switch s.Status {
	case StatusComplete:
		return s, nil, ErrSessionComplete
	case StatusInProgress:
		return s, s.CurrentQuestion(), nil
	}
	if len(s.Questions) == 0 {
		return s, nil, NewValidationError("questions", "session has no questions")
	}

	next := s.clone()
	next.Status = StatusInProgress
	next.Phase = PhaseAwaitingAnswer
	next.Current = 0
	next.StartedAt = now.UTC().Round(0)

	return next, next.CurrentQuestion(), nil
}

// Answer evaluates choice against the current question.
// The result depends only on the current question and choice.
func (s QuizSession) Answer(choice int, at time.Time) (QuizSession, AnswerResult, error) {
	if err := s.expect(PhaseAwaitingAnswer); err != nil {
		return s, AnswerResult{}, err
	}

	q := s.Questions[s.Current]
	if choice < 0 || choice >= len(q.Options) {
		return s, AnswerResult{}, NewValidationError("choice", fmt.Sprintf("option %d out of range", choice))
	}

	correct := q.IsCorrect(choice)
	next := s.clone()
	if correct && !s.retrying() {
		next.CorrectAnswers++
	}
	next.Answers = append(next.Answers, AnswerRecord{
		ItemID:         q.ItemID,
		SelectedOption: choice,
		IsCorrect:      correct,
		AnsweredAt:     at.UTC().Round(0),
	})
	next.Phase = PhaseAnswered

	return next, AnswerResult{
		IsCorrect:     correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}, nil
}

// Retry re-opens a wrongly answered question. Only learn sessions allow it.
func (s QuizSession) Retry() (QuizSession, error) {
	if err := s.expect(PhaseAnswered); err != nil {
		return s, err
	}
	last, _ := s.LastAnswer()
	if s.Mode != ModeLearn || last.IsCorrect {
		return s, ErrRetryNotAllowed
	}

	next := s.clone()
	next.Phase = PhaseAwaitingAnswer
	return next, nil
}

// Advance moves to the next question. It returns a nil question once the
// last question has been answered and the session is Complete.
func (s QuizSession) Advance(now time.Time) (QuizSession, *Question, error) {
	if err := s.expect(PhaseAnswered); err != nil {
		if err == ErrAnswerNotExpected {
			err = ErrQuestionNotAnswered
		}
		return s, nil, err
	}
	if last, _ := s.LastAnswer(); s.Mode == ModeLearn && !last.IsCorrect {
		return s, nil, ErrRetryRequired
	}

	next := s.clone()
	next.Current++
	if next.Current >= len(next.Questions) {
		next.Status = StatusComplete
		next.Phase = ""
		next.CompletedAt = now.UTC().Round(0)
		return next, nil, nil
	}

	next.Phase = PhaseAwaitingAnswer
	return next, next.CurrentQuestion(), nil
}

// Summarize reports the score of the session so far.
func (s QuizSession) Summarize() Summary {
	total := len(s.Questions)
	percentage := 0
	if total > 0 {
		// Floor keeps the tier thresholds exact: 99.5% is not a perfect clear.
		percentage = s.CorrectAnswers * 100 / total
	}

	return Summary{
		CorrectCount:    s.CorrectAnswers,
		Total:           total,
		ScorePercentage: percentage,
		Points:          s.CorrectAnswers * PointsPerCorrect,
		Tier:            TierFor(percentage),
	}
}

func (s QuizSession) expect(phase QuestionPhase) error {
	switch s.Status {
	case StatusNotStarted:
		return ErrSessionNotStarted
	case StatusComplete:
		return ErrSessionComplete
	}
	if s.Phase != phase {
		if phase == PhaseAwaitingAnswer {
			return ErrAnswerNotExpected
		}
		return ErrQuestionNotAnswered
	}
	return nil
}

// retrying reports whether the current question was re-opened after a wrong
// answer. Retry is the only way back to AwaitingAnswer on the same question.
func (s QuizSession) retrying() bool {
	last, ok := s.LastAnswer()
	return ok && s.Mode == ModeLearn && !last.IsCorrect
}

func (s QuizSession) clone() QuizSession {
	next := s
	next.Answers = make([]AnswerRecord, len(s.Answers), len(s.Answers)+1)
	copy(next.Answers, s.Answers)
	return next
}

// Summary is the terminal report of a session.
type Summary struct {
	CorrectCount    int
	Total           int
	ScorePercentage int
	Points          int
	Tier            Tier
}

// Message returns the tier message filled with the score.
func (s Summary) Message() string {
	if s.Tier.Name == TierPerfect {
		return s.Tier.Message
	}
	return fmt.Sprintf(s.Tier.Message, s.CorrectCount, s.Total)
}

// TierName identifies a result tier.
type TierName string

const (
	TierPerfect   TierName = "perfect"
	TierExcellent TierName = "excellent"
	TierPassed    TierName = "passed"
	TierRetry     TierName = "retry"
)

// Tier is the congratulation shown for a score range.
type Tier struct {
	Name    TierName
	Icon    string
	Title   string
	Message string
}

var (
	tierPerfect   = Tier{TierPerfect, "🏆", "Perfect clear!", "You got everything right! Amazing!"}
	tierExcellent = Tier{TierExcellent, "🎉", "Stage cleared!", "You answered %d/%d correctly, excellent!"}
	tierPassed    = Tier{TierPassed, "😊", "Stage passed!", "You answered %d/%d correctly, keep going!"}
	tierRetry     = Tier{TierRetry, "💪", "Try again!", "You answered %d/%d correctly, practice makes progress!"}
)

// TierFor selects the tier for a score percentage.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 100:
		return tierPerfect
	case percentage >= 80:
		return tierExcellent
	case percentage >= 60:
		return tierPassed
	default:
		return tierRetry
	}
}
