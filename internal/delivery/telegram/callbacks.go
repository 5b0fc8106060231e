package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb, "")
		return
	}

	data := decodeCallback(cb.Data)
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	switch data.Action {
	case actionAnswer:
		h.handleAnswerCallback(ctx, cb, data)
		return
	case actionNext:
		h.handleNextCallback(ctx, cb, data)
		return
	case actionRetry:
		h.handleRetryCallback(ctx, cb, data)
		return

	case actionLearn:
		_ = h.withErrorHandling(h.learnHandler(userID))(ctx, chatID)
	case actionChallenge:
		stage, ok := data.intParam(0)
		if !ok {
			stage = 1
		}
		_ = h.withErrorHandling(h.challengeHandler(userID, stage))(ctx, chatID)
	case actionRoots:
		h.handleRootsPageCallback(cb, data)
	case actionRoot:
		h.handleRootCallback(cb, data)
	case actionProgress:
		h.handleProgressCallback(ctx, cb)
	case actionReset:
		h.handleResetCallback(ctx, cb, data)

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	h.answerCallback(cb, "")
}

// edit replaces the text and keyboard of the message a button belongs to.
func (h *Handler) edit(cb *tgbotapi.CallbackQuery, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	h.send(edit)
}
