package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// SendReminder sends a streak reminder to a private chat and deletes the
// previous reminder so the chat keeps only the latest one.
func (h *Handler) SendReminder(userID int64, payload entities.ReminderPayload) error {
	chatID := userID

	msg := newMessage(chatID, buildReminderNotification(payload))
	msg.ReplyMarkup = buildReminderKeyboard()

	sent, err := h.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	prev, hadPrev := h.reminderStorage.UpsertAndGetPrev(userID, chatID, sent.MessageID, time.Now())
	if hadPrev {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)); err != nil {
			h.logger.Debug("failed to delete previous reminder",
				zap.Int64("user_id", userID),
				zap.Int("message_id", prev.MessageID),
				zap.Error(err),
			)
		}
	}

	h.logger.Debug("reminder sent",
		zap.Int64("user_id", userID),
		zap.Int("streak", payload.Streak),
	)
	return nil
}
