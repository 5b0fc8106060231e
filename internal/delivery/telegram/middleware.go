package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports handler errors to the chat. Validation and
// not found errors are shown to the user, everything else is logged.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		var nf *entities.NotFoundError
		var ve *entities.ValidationError
		switch {
		case errors.As(err, &nf):
			h.logger.Debug("not found",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, notFoundMessage(nf))
		case errors.As(err, &ve):
			h.logger.Debug("validation failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, ve.Error())
		case isSessionError(err):
			h.sendError(chatID, msgSessionExpired)
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}

func notFoundMessage(err *entities.NotFoundError) string {
	if err.Kind == "root" {
		return msgRootNotFound
	}
	return err.Error()
}

func isSessionError(err error) bool {
	return errors.Is(err, entities.ErrSessionComplete) ||
		errors.Is(err, entities.ErrSessionNotStarted) ||
		errors.Is(err, entities.ErrSessionNotComplete)
}
