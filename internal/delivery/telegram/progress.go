package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// maxImportSize bounds the size of an uploaded progress backup.
const maxImportSize = 1 << 20

func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		d := h.progressService.Dashboard(ctx, userID)

		msg := newMessage(chatID, formatDashboard(d))
		msg.ReplyMarkup = buildProgressKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleProgressCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	d := h.progressService.Dashboard(ctx, cb.From.ID)
	kb := buildProgressKeyboard()
	h.edit(cb, formatDashboard(d), &kb)
}

func (h *Handler) exportHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		data, err := h.progressService.ExportSnapshot(ctx, userID)
		if err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}

		name := fmt.Sprintf("wordroots_progress_%s.json", time.Now().Format("2006-01-02"))
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
		doc.Caption = msgExportCaption
		h.send(doc)

		h.logger.Info("progress exported",
			zap.Int64("user_id", userID),
			zap.Int("bytes", len(data)),
		)
		return nil
	}
}

// importDocumentHandler restores progress from an uploaded backup. Documents
// are only accepted after /import.
func (h *Handler) importDocumentHandler(userID int64, doc *tgbotapi.Document) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.takePendingImport(userID) {
			h.send(newPlainMessage(chatID, msgUnknownCommand))
			return nil
		}

		if !strings.HasSuffix(strings.ToLower(doc.FileName), ".json") {
			h.sendError(chatID, msgImportNotDocument)
			return nil
		}
		if doc.FileSize > maxImportSize {
			h.sendError(chatID, msgImportTooLarge)
			return nil
		}

		blob, err := h.downloadFile(ctx, doc.FileID)
		if err != nil {
			return err
		}

		if err := h.progressService.ImportSnapshot(ctx, userID, blob); err != nil {
			if entities.IsValidation(err) {
				h.sendError(chatID, fmt.Sprintf(msgImportInvalid, err.Error()))
				return nil
			}
			return err
		}

		h.send(newPlainMessage(chatID, msgImportDone))
		return nil
	}
}

// downloadFile fetches an uploaded file from the Telegram file API.
func (h *Handler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxImportSize {
		return nil, entities.NewValidationError("file", "backup is too large")
	}
	return data, nil
}

func (h *Handler) handleResetCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	userID := cb.From.ID

	if data.param(0) != resetConfirm {
		h.send(tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, msgResetCancelled))
		return
	}

	if err := h.progressService.Reset(ctx, userID); err != nil {
		h.logger.Error("failed to reset progress",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(cb.Message.Chat.ID, msgInternalError)
		return
	}
	h.quizStorage.Delete(userID)
	h.reminderStorage.Delete(userID)

	h.send(tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, msgResetDone))
}
