package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
	"github.com/aliskhannn/wordroots-bot/internal/service"
)

// parseRootsArgs splits "/roots" arguments into an optional kind and a search query.
func parseRootsArgs(args string) (entities.RootKind, string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", ""
	}
	if kind, ok := service.ParseKind(fields[0]); ok {
		return kind, strings.Join(fields[1:], " ")
	}
	return "", strings.Join(fields, " ")
}

func (h *Handler) rootsHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		kind, query := parseRootsArgs(args)
		query = callbackQuery(query)

		roots := h.rootService.Filter(kind, query)
		if len(roots) == 0 {
			h.sendError(chatID, msgNoRootsFound)
			return nil
		}

		text, totalPages := buildRootsPage(roots, 0)
		msg := newMessage(chatID, text)
		if kb := buildRootsKeyboard(roots, 0, totalPages, string(kind), query); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) rootHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			h.sendError(chatID, msgRootUsage)
			return nil
		}

		root, err := h.rootService.GetByID(id)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, formatRootCard(root))
		msg.ReplyMarkup = buildRootCardKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleRootsPageCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	page, ok := data.intParam(0)
	if !ok || page < 0 {
		h.logger.Warn("invalid page in callback", zap.String("data", cb.Data))
		return
	}

	kind, _ := service.ParseKind(data.param(1))
	query := data.param(2)

	roots := h.rootService.Filter(kind, query)
	text, totalPages := buildRootsPage(roots, page)
	if totalPages == 0 || page >= totalPages {
		h.logger.Warn("page out of range",
			zap.Int("page", page),
			zap.Int("total_pages", totalPages),
		)
		return
	}

	h.edit(cb, text, buildRootsKeyboard(roots, page, totalPages, string(kind), query))
}

func (h *Handler) handleRootCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	id, ok := data.intParam(0)
	if !ok {
		return
	}

	root, err := h.rootService.GetByID(id)
	if err != nil {
		h.logger.Warn("root from callback not found", zap.Int("root_id", id))
		return
	}

	kb := buildRootCardKeyboard()
	h.edit(cb, formatRootCard(root), &kb)
}
