// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// Error and status messages.
const (
	msgUnknownCommand     = "Unknown command. Send /help to see what I can do."
	msgInternalError      = "Something went wrong. Please try again later."
	msgRootUsage          = "Usage: /root 12"
	msgRootNotFound       = "There is no root with this number."
	msgNoRootsFound       = "Nothing found. Try another search."
	msgStageNotFound      = "There is no such stage. Stages go from 1 to %d."
	msgSessionExpired     = "This quiz is over. Start a new one with /learn or /challenge."
	msgAlreadyAnswered    = "You have already answered this question."
	msgImportPrompt       = "Send me the exported .json file as a document to restore your progress. Your current progress will be replaced."
	msgImportNotDocument  = "Please send the progress backup as a .json document."
	msgImportTooLarge     = "This file is too large to be a progress backup."
	msgImportInvalid      = "❌ The file is not a valid progress backup, nothing was changed.\n\n%s"
	msgImportDone         = "✅ Progress restored."
	msgExportCaption      = "📦 Your progress backup. Send it back with /import to restore it on any device."
	msgResetConfirm       = "⚠️ This deletes all your progress and achievements. Are you sure?"
	msgResetDone          = "Progress deleted. Start again with /learn."
	msgResetCancelled     = "Reset cancelled."
)

const rootsPerPage = 5

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMessage builds the /start message (MarkdownV2 safe).
func welcomeMessage(firstName string, catalogSize int) string {
	var sb strings.Builder

	greeting := "Hello!"
	if firstName != "" {
		greeting = fmt.Sprintf("Hello, %s!", firstName)
	}
	sb.WriteString(md("👋 " + greeting))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Word Roots Workshop"))
	sb.WriteString(md(fmt.Sprintf(" teaches you %d English roots, prefixes and suffixes. ", catalogSize)))
	sb.WriteString(md("Once you know the parts, you can guess the meaning of words you have never seen."))
	sb.WriteString("\n\n")

	sb.WriteString(md("📖 /learn: study roots one by one with a quick quiz"))
	sb.WriteString("\n")
	sb.WriteString(md("🎯 /challenge: clear a 10 question stage"))
	sb.WriteString("\n")
	sb.WriteString(md("🔎 /roots: browse and search the catalog"))
	sb.WriteString("\n")
	sb.WriteString(md("📊 /progress: level, streak and achievements"))

	return sb.String()
}

// helpMessage lists the commands (MarkdownV2 safe).
func helpMessage() string {
	lines := []string{
		"/learn: continue learning where you stopped",
		"/challenge [stage]: 10 questions over one stage of roots",
		"/roots [prefix|suffix|root] [search]: browse the catalog",
		"/root N: show root number N",
		"/progress: your dashboard",
		"/export: download a progress backup",
		"/import: restore a progress backup",
		"/reset: delete all progress",
	}

	var sb strings.Builder
	sb.WriteString(bold("Commands"))
	sb.WriteString("\n\n")
	for _, l := range lines {
		sb.WriteString(md(l))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatRootKind formats a root kind for display.
func formatRootKind(kind entities.RootKind) string {
	switch kind {
	case entities.KindPrefix:
		return "prefix"
	case entities.KindSuffix:
		return "suffix"
	default:
		return "root"
	}
}

// formatRootCard formats the full card of a root (MarkdownV2 safe).
func formatRootCard(r *entities.Root) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("%d. %s", r.ID, r.Root)))
	sb.WriteString(md(fmt.Sprintf("  (%s", formatRootKind(r.Kind()))))
	if r.Origin != "" {
		sb.WriteString(md(", " + r.Origin))
	}
	sb.WriteString(md(")"))
	sb.WriteString("\n\n")

	sb.WriteString(md("💡 "))
	sb.WriteString(bold(r.Meaning))
	if r.MeaningEn != "" && r.MeaningEn != r.Meaning {
		sb.WriteString(md(" · " + r.MeaningEn))
	}
	sb.WriteString("\n")

	if r.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(r.Description))
		sb.WriteString("\n")
	}

	if len(r.Examples) > 0 {
		sb.WriteString("\n")
		sb.WriteString(bold("Examples"))
		sb.WriteString("\n")
		for _, ex := range r.Examples {
			sb.WriteString(md("• "))
			sb.WriteString(bold(ex.Word))
			sb.WriteString(md(fmt.Sprintf(" = %s: %s", formatBreakdown(ex.Breakdown), ex.Meaning)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// formatBreakdown renders a morpheme split like "in + spect + ion".
func formatBreakdown(b entities.Breakdown) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{b.Prefix, b.Root, b.Suffix} {
		if p = strings.Trim(p, "- "); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " + ")
}

// buildRootsPage renders one page of the root list and returns the page count.
func buildRootsPage(roots []*entities.Root, page int) (text string, totalPages int) {
	totalPages = (len(roots) + rootsPerPage - 1) / rootsPerPage
	if page < 0 || page >= totalPages {
		return "", totalPages
	}

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("📚 Roots (%d)", len(roots))))
	sb.WriteString("\n\n")

	for _, r := range paginateRoots(roots, page, rootsPerPage) {
		sb.WriteString(bold(fmt.Sprintf("%d. %s", r.ID, r.Root)))
		sb.WriteString(md(fmt.Sprintf(": %s", r.Meaning)))
		sb.WriteString("\n")
		if len(r.Examples) > 0 {
			words := make([]string, 0, len(r.Examples))
			for _, ex := range r.Examples {
				words = append(words, ex.Word)
			}
			sb.WriteString(italic(strings.Join(words, ", ")))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(md(fmt.Sprintf("Page %d/%d", page+1, totalPages)))
	return sb.String(), totalPages
}

func paginateRoots(roots []*entities.Root, page, perPage int) []*entities.Root {
	start := page * perPage
	if start >= len(roots) {
		return nil
	}
	end := min(start+perPage, len(roots))
	return roots[start:end]
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	filled = max(0, min(filled, length))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s]", bar)
}

// formatQuizStart builds the quiz start message (MarkdownV2 safe).
func formatQuizStart(session entities.QuizSession) string {
	if session.Mode == entities.ModeChallenge {
		return fmt.Sprintf(
			"%s\n\n%s",
			bold(fmt.Sprintf("🎯 Stage %d", session.Stage)),
			md(fmt.Sprintf("%d questions, 10 points each. Pick the right option.", session.Total())),
		)
	}
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("📖 Learning session"),
		md(fmt.Sprintf("Today's goal: %d roots. Answer each quiz correctly to master the root.", session.Total())),
	)
}

// formatQuestion formats a quiz question (MarkdownV2 safe).
func formatQuestion(session entities.QuizSession, q *entities.Question) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("Question %d of %d", session.Current+1, session.Total())))
	if session.Mode == entities.ModeChallenge {
		sb.WriteString(md(fmt.Sprintf("  ·  ⭐ %d", session.CorrectAnswers*entities.PointsPerCorrect)))
	}
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(session.Current+1, session.Total(), 10)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Prompt))
	sb.WriteString("\n\n")

	for i, opt := range q.Options {
		sb.WriteString(md(fmt.Sprintf("%c. %s", 'A'+i, opt)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatAnswerFeedback formats the question together with the feedback (MarkdownV2 safe).
func formatAnswerFeedback(session entities.QuizSession, q *entities.Question, res entities.AnswerResult) string {
	var sb strings.Builder
	sb.WriteString(formatQuestion(session, q))
	sb.WriteString("\n")

	if res.IsCorrect {
		sb.WriteString(bold("✅ Correct!"))
	} else {
		sb.WriteString(bold("❌ Not quite."))
		sb.WriteString(md(" The right answer is: "))
		sb.WriteString(bold(res.CorrectAnswer))
	}

	if res.Explanation != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(res.Explanation))
	}

	return sb.String()
}

// formatAchievements formats newly unlocked achievements (MarkdownV2 safe).
func formatAchievements(unlocked []entities.Achievement) string {
	if len(unlocked) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, a := range unlocked {
		sb.WriteString(md(fmt.Sprintf("%s Achievement unlocked: ", a.Icon)))
		sb.WriteString(bold(a.Title))
		sb.WriteString("\n")
		sb.WriteString(italic(a.Description))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatSummary formats the final report of a session (MarkdownV2 safe).
func formatSummary(mode entities.QuizMode, s entities.Summary, p *entities.LearnerProgress) string {
	var sb strings.Builder

	sb.WriteString(md(s.Tier.Icon + " "))
	sb.WriteString(bold(s.Tier.Title))
	sb.WriteString("\n\n")
	sb.WriteString(md(s.Message()))
	sb.WriteString("\n\n")
	sb.WriteString(md(buildProgressBar(s.CorrectCount, s.Total, 10)))
	sb.WriteString(md(fmt.Sprintf(" %d%%", s.ScorePercentage)))
	sb.WriteString("\n")

	if mode == entities.ModeChallenge {
		sb.WriteString(md(fmt.Sprintf("⭐ Points: %d", s.Points)))
		sb.WriteString("\n")
	}

	if p != nil {
		sb.WriteString(md(fmt.Sprintf("🏅 Level %d  ·  🔥 Streak %d", p.Level, p.StudyStreak)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatDashboard formats the progress overview (MarkdownV2 safe).
func formatDashboard(d *entities.Dashboard) string {
	p := d.Progress
	var sb strings.Builder

	sb.WriteString(bold("📊 Your progress"))
	sb.WriteString("\n\n")

	sb.WriteString(md(buildProgressBar(len(p.MasteredItems), d.CatalogSize, 20)))
	sb.WriteString(md(fmt.Sprintf(" %d%%", d.Percentage)))
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("🏅 Level: %d", p.Level)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ Mastered: %d / %d", len(p.MasteredItems), d.CatalogSize)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("⏫ To next level: %d", d.ToNextLevel)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Study streak: %d", p.StudyStreak)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📅 Last study: %s", formatDate(p))))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Sessions: %d  ·  ⭐ Score: %d", p.SessionCount, p.TotalScore)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("🏆 Achievements"))
	sb.WriteString("\n")
	if len(d.Achievements) == 0 {
		sb.WriteString(md("None yet. Master your first root to unlock one!"))
		sb.WriteString("\n")
	}
	for _, a := range d.Achievements {
		sb.WriteString(md(fmt.Sprintf("%s %s: %s (%s)", a.Icon, a.Title, a.Description, a.UnlockedAt.Format("2006-01-02"))))
		sb.WriteString("\n")
	}
	for _, def := range d.Locked {
		sb.WriteString(md(fmt.Sprintf("🔒 %s: %s", def.Title, def.Description)))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatDate(p *entities.LearnerProgress) string {
	if p.LastStudyDate.IsZero() {
		return "never"
	}
	return p.LastStudyDate.Format("2006-01-02")
}

// buildReminderNotification builds the streak reminder message (MarkdownV2 safe).
func buildReminderNotification(payload entities.ReminderPayload) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("🔥 Keep your %d day streak!", payload.Streak)))
	sb.WriteString("\n\n")
	sb.WriteString(md("You have not studied today yet. A single root is enough to keep the streak alive."))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🏅 Level %d  ·  ✅ %d roots mastered", payload.Level, payload.Mastered)))

	if payload.NextRoot != nil {
		sb.WriteString("\n\n")
		sb.WriteString(md("Next up: "))
		sb.WriteString(bold(payload.NextRoot.Root))
		sb.WriteString(md(fmt.Sprintf(" (%s)", payload.NextRoot.Meaning)))
	}

	return sb.String()
}
