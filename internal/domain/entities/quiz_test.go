package entities

import (
	"errors"
	"testing"
	"time"
)

func testQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ItemID:        i + 1,
			Type:          QuestionItemQuiz,
			Prompt:        "question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectIndex:  1,
			CorrectAnswer: "b",
			Explanation:   "because b",
		}
	}
	return qs
}

func startSession(t *testing.T, mode QuizMode, n int) QuizSession {
	t.Helper()
	s, q, err := NewQuizSession("s1", 7, mode, testQuestions(n)).Start(time.Now())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if q == nil || q.ItemID != 1 {
		t.Fatalf("expected first question, got %+v", q)
	}
	return s
}

func TestChallengePerfectRun(t *testing.T) {
	s := startSession(t, ModeChallenge, 5)
	now := time.Now()

	for i := 0; i < 5; i++ {
		var (
			res AnswerResult
			err error
		)
		s, res, err = s.Answer(1, now)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !res.IsCorrect || res.CorrectAnswer != "b" {
			t.Fatalf("expected correct answer, got %+v", res)
		}

		var q *Question
		s, q, err = s.Advance(now)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if i < 4 && q == nil {
			t.Fatalf("expected question after %d", i)
		}
		if i == 4 && q != nil {
			t.Fatalf("expected no question after the last one")
		}
	}

	if s.Status != StatusComplete {
		t.Fatalf("expected complete, got %s", s.Status)
	}

	sum := s.Summarize()
	if sum.CorrectCount != 5 || sum.Total != 5 || sum.ScorePercentage != 100 || sum.Points != 50 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.Tier.Name != TierPerfect {
		t.Fatalf("expected perfect tier, got %s", sum.Tier.Name)
	}
	if sum.Message() != "You got everything right! Amazing!" {
		t.Fatalf("unexpected message %q", sum.Message())
	}
}

func TestChallengeWrongAnswerAdvances(t *testing.T) {
	s := startSession(t, ModeChallenge, 2)

	s, res, err := s.Answer(0, time.Now())
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.IsCorrect {
		t.Fatalf("expected wrong answer")
	}

	if _, err := s.Retry(); !errors.Is(err, ErrRetryNotAllowed) {
		t.Fatalf("expected ErrRetryNotAllowed, got %v", err)
	}

	s, q, err := s.Advance(time.Now())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if q == nil || q.ItemID != 2 {
		t.Fatalf("expected second question, got %+v", q)
	}
	if s.CorrectAnswers != 0 {
		t.Fatalf("expected 0 correct answers, got %d", s.CorrectAnswers)
	}
}

func TestLearnRetryFlow(t *testing.T) {
	s := startSession(t, ModeLearn, 1)

	s, _, err := s.Answer(2, time.Now())
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	if _, _, err := s.Advance(time.Now()); !errors.Is(err, ErrRetryRequired) {
		t.Fatalf("expected ErrRetryRequired, got %v", err)
	}

	s, err = s.Retry()
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.Phase != PhaseAwaitingAnswer || s.Current != 0 {
		t.Fatalf("expected same question awaiting answer, got phase %s at %d", s.Phase, s.Current)
	}

	s, res, err := s.Answer(1, time.Now())
	if err != nil {
		t.Fatalf("answer after retry: %v", err)
	}
	if !res.IsCorrect {
		t.Fatalf("expected correct answer after retry")
	}
	if s.CorrectAnswers != 0 {
		t.Fatalf("retried answers must not count, got %d", s.CorrectAnswers)
	}
	if len(s.Answers) != 2 {
		t.Fatalf("expected 2 answer records, got %d", len(s.Answers))
	}

	s, q, err := s.Advance(time.Now())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if q != nil || s.Status != StatusComplete {
		t.Fatalf("expected complete session")
	}
}

func TestSessionStateErrors(t *testing.T) {
	fresh := NewQuizSession("s1", 1, ModeChallenge, testQuestions(1))

	if _, _, err := fresh.Answer(0, time.Now()); !errors.Is(err, ErrSessionNotStarted) {
		t.Fatalf("expected ErrSessionNotStarted, got %v", err)
	}

	s := startSession(t, ModeChallenge, 1)
	if _, _, err := s.Advance(time.Now()); !errors.Is(err, ErrQuestionNotAnswered) {
		t.Fatalf("expected ErrQuestionNotAnswered, got %v", err)
	}

	if _, _, err := s.Answer(4, time.Now()); !IsValidation(err) {
		t.Fatalf("expected validation error for out of range option, got %v", err)
	}

	answered, _, err := s.Answer(1, time.Now())
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, _, err := answered.Answer(1, time.Now()); !errors.Is(err, ErrAnswerNotExpected) {
		t.Fatalf("expected ErrAnswerNotExpected, got %v", err)
	}

	done, _, err := answered.Advance(time.Now())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, _, err := done.Answer(1, time.Now()); !errors.Is(err, ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete, got %v", err)
	}
	if _, _, err := done.Start(time.Now()); !errors.Is(err, ErrSessionComplete) {
		t.Fatalf("expected ErrSessionComplete on restart, got %v", err)
	}

	empty := NewQuizSession("s2", 1, ModeChallenge, nil)
	if _, _, err := empty.Start(time.Now()); !IsValidation(err) {
		t.Fatalf("expected validation error for empty session, got %v", err)
	}
}

func TestSessionIsValue(t *testing.T) {
	s := startSession(t, ModeChallenge, 2)

	next, _, err := s.Answer(1, time.Now())
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if s.Phase != PhaseAwaitingAnswer || len(s.Answers) != 0 || s.CorrectAnswers != 0 {
		t.Fatalf("answer must not modify the receiver")
	}
	if next.Phase != PhaseAnswered || len(next.Answers) != 1 {
		t.Fatalf("unexpected next state %+v", next)
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		percentage int
		want       TierName
	}{
		{100, TierPerfect},
		{99, TierExcellent},
		{80, TierExcellent},
		{79, TierPassed},
		{60, TierPassed},
		{59, TierRetry},
		{0, TierRetry},
	}

	for _, tt := range tests {
		if got := TierFor(tt.percentage).Name; got != tt.want {
			t.Fatalf("TierFor(%d) = %s, want %s", tt.percentage, got, tt.want)
		}
	}
}

func TestSummaryMessage(t *testing.T) {
	s := Summary{CorrectCount: 7, Total: 10, ScorePercentage: 70, Tier: TierFor(70)}
	if got, want := s.Message(), "You answered 7/10 correctly, keep going!"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSummarizeFloorsPercentage(t *testing.T) {
	s := NewQuizSession("s1", 1, ModeChallenge, testQuestions(3))
	s.CorrectAnswers = 2

	sum := s.Summarize()
	if sum.ScorePercentage != 66 {
		t.Fatalf("expected 66, got %d", sum.ScorePercentage)
	}
	if sum.Tier.Name != TierPassed {
		t.Fatalf("expected passed tier, got %s", sum.Tier.Name)
	}
}
