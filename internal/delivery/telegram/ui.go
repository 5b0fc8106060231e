package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// buildRootsKeyboard builds pagination keyboard for the root list.
func buildRootsKeyboard(roots []*entities.Root, page, totalPages int, kind, query string) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var cards []tgbotapi.InlineKeyboardButton
	for _, r := range paginateRoots(roots, page, rootsPerPage) {
		cards = append(cards, tgbotapi.NewInlineKeyboardButtonData(r.Root, buildRootCallback(r.ID)))
	}
	if len(cards) > 0 {
		rows = append(rows, cards)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildRootsPageCallback(page-1, kind, query)))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildRootsPageCallback(page+1, kind, query)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildRootCardKeyboard builds keyboard under a root card.
func buildRootCardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 All roots", buildRootsPageCallback(0, "", "")),
			tgbotapi.NewInlineKeyboardButtonData("📖 Learn", buildLearnCallback()),
		),
	)
}

// buildProgressKeyboard builds keyboard for progress screen.
func buildProgressKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildProgressCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Learn", buildLearnCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Challenge", buildChallengeCallback(1)),
		),
	)
}

// buildStagesKeyboard builds keyboard to pick a challenge stage.
func buildStagesKeyboard(stageCount int) tgbotapi.InlineKeyboardMarkup {
	const perRow = 5

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for stage := 1; stage <= stageCount; stage++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", stage), buildChallengeCallback(stage)))
		if len(row) == perRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnswerKeyboard builds keyboard for a quiz question.
func buildAnswerKeyboard(session entities.QuizSession, q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := fmt.Sprintf("%c. %s", 'A'+i, option)
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(session.ID, session.Current, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildFeedbackKeyboard builds keyboard shown after an answer. A wrong
// learn answer can only be retried.
func buildFeedbackKeyboard(session entities.QuizSession, correct bool) tgbotapi.InlineKeyboardMarkup {
	if session.Mode == entities.ModeLearn && !correct {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔁 Try again", buildRetryCallback(session.ID)),
			),
		)
	}

	label := "Next ▶️"
	if session.Current+1 >= session.Total() {
		label = "🏁 Finish"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNextCallback(session.ID)),
		),
	)
}

// buildSummaryKeyboard builds keyboard for the results screen.
func buildSummaryKeyboard(session entities.QuizSession, stageCount int) tgbotapi.InlineKeyboardMarkup {
	var first []tgbotapi.InlineKeyboardButton
	if session.Mode == entities.ModeChallenge {
		first = append(first, tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildChallengeCallback(session.Stage)))
		if session.Stage < stageCount {
			first = append(first, tgbotapi.NewInlineKeyboardButtonData("Next stage ▶️", buildChallengeCallback(session.Stage+1)))
		}
	} else {
		first = append(first, tgbotapi.NewInlineKeyboardButtonData("📖 Keep learning", buildLearnCallback()))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		first,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My progress", buildProgressCallback()),
		),
	)
}

// buildResetKeyboard builds the reset confirmation keyboard.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete everything", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}

// buildReminderKeyboard builds keyboard under a streak reminder.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Learn now", buildLearnCallback()),
		),
	)
}
