package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total, length int
		want                   string
	}{
		{0, 10, 5, "[░░░░░]"},
		{5, 10, 4, "[██░░]"},
		{10, 10, 3, "[███]"},
		{12, 10, 3, "[███]"},
		{1, 0, 2, "[░░]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, tt.length); got != tt.want {
			t.Fatalf("buildProgressBar(%d, %d, %d) = %q, want %q", tt.current, tt.total, tt.length, got, tt.want)
		}
	}
}

func TestFormatBreakdown(t *testing.T) {
	b := entities.Breakdown{Prefix: "in-", Root: "spect", Suffix: "-ion"}
	if got := formatBreakdown(b); got != "in + spect + ion" {
		t.Fatalf("unexpected breakdown %q", got)
	}
	if got := formatBreakdown(entities.Breakdown{Root: "port"}); got != "port" {
		t.Fatalf("unexpected breakdown %q", got)
	}
}

func TestBuildRootsPage(t *testing.T) {
	roots := make([]*entities.Root, 12)
	for i := range roots {
		roots[i] = &entities.Root{ID: i + 1, Root: "root", Meaning: "meaning"}
	}

	text, total := buildRootsPage(roots, 2)
	if total != 3 {
		t.Fatalf("expected 3 pages, got %d", total)
	}
	if !strings.Contains(text, "Page 3/3") || !strings.Contains(text, "11\\. root") {
		t.Fatalf("unexpected page text %q", text)
	}

	if text, _ := buildRootsPage(roots, 3); text != "" {
		t.Fatalf("expected empty text for page out of range")
	}
	if got := len(paginateRoots(roots, 2, rootsPerPage)); got != 2 {
		t.Fatalf("expected 2 roots on the last page, got %d", got)
	}
}

func TestFormatQuestionEscapesMarkdown(t *testing.T) {
	session := entities.QuizSession{
		Mode:      entities.ModeChallenge,
		Questions: make([]entities.Question, 10),
		Current:   2,
	}
	q := &entities.Question{
		Prompt:  `What does the word "re-turn" mean?`,
		Options: []string{"to come back.", "to (not) go"},
	}

	text := formatQuestion(session, q)
	if !strings.Contains(text, "Question 3 of 10") {
		t.Fatalf("expected position in %q", text)
	}
	if !strings.Contains(text, `re\-turn`) || !strings.Contains(text, `to \(not\) go`) || !strings.Contains(text, `back\.`) {
		t.Fatalf("expected MarkdownV2 escaping in %q", text)
	}
}

func TestFormatSummary(t *testing.T) {
	summary := entities.Summary{CorrectCount: 5, Total: 5, ScorePercentage: 100, Points: 50, Tier: entities.TierFor(100)}
	p := entities.NewLearnerProgress()

	text := formatSummary(entities.ModeChallenge, summary, p)
	if !strings.Contains(text, "Perfect clear") || !strings.Contains(text, "Points: 50") {
		t.Fatalf("unexpected summary %q", text)
	}

	learn := formatSummary(entities.ModeLearn, summary, nil)
	if strings.Contains(learn, "Points") {
		t.Fatalf("learn summary must not show points: %q", learn)
	}
}

func TestFormatDashboard(t *testing.T) {
	p := entities.NewLearnerProgress()
	p.SetMastered([]int{1, 2, 3})
	p.StudyStreak = 4
	p.LastStudyDate = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p.Unlock(entities.AchievementFirstRoot, p.LastStudyDate)

	text := formatDashboard(entities.NewDashboard(p, 12))
	for _, want := range []string{"Mastered: 3 / 12", "Study streak: 4", "2026\\-03\\-01", "First root", "🔒"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in dashboard %q", want, text)
		}
	}
}

func TestBuildReminderNotification(t *testing.T) {
	text := buildReminderNotification(entities.ReminderPayload{
		Streak:   6,
		Mastered: 14,
		Level:    2,
		NextRoot: &entities.Root{Root: "tele-", Meaning: "far"},
	})

	for _, want := range []string{"6 day streak", "14 roots mastered", `tele\-`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in %q", want, text)
		}
	}
}
