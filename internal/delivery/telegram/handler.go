package telegram

import (
	"context"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	rootService     RootService
	progressService ProgressService
	quizService     QuizService
	quizStorage     QuizStorage
	reminderStorage ReminderStorage
	httpClient      *http.Client

	// pendingImports holds users whose next document is a progress backup.
	importMu       sync.Mutex
	pendingImports map[int64]bool
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	rootService RootService,
	progressService ProgressService,
	quizService QuizService,
	quizStorage QuizStorage,
	reminderStorage ReminderStorage,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		rootService:     rootService,
		progressService: progressService,
		quizService:     quizService,
		quizStorage:     quizStorage,
		reminderStorage: reminderStorage,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		pendingImports:  make(map[int64]bool),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.Document != nil {
		_ = h.withErrorHandling(h.importDocumentHandler(userID, msg.Document))(ctx, chatID)
		return
	}

	if !msg.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	args := msg.CommandArguments()
	switch msg.Command() {
	case "start":
		h.send(newMessage(chatID, welcomeMessage(msg.From.FirstName, len(h.rootService.All()))))

	case "help":
		h.send(newMessage(chatID, helpMessage()))

	case "learn":
		_ = h.withErrorHandling(h.learnHandler(userID))(ctx, chatID)

	case "challenge":
		_ = h.withErrorHandling(h.challengeCommandHandler(userID, args))(ctx, chatID)

	case "roots":
		_ = h.withErrorHandling(h.rootsHandler(args))(ctx, chatID)

	case "root":
		_ = h.withErrorHandling(h.rootHandler(args))(ctx, chatID)

	case "progress":
		_ = h.withErrorHandling(h.progressHandler(userID))(ctx, chatID)

	case "export":
		_ = h.withErrorHandling(h.exportHandler(userID))(ctx, chatID)

	case "import":
		h.markPendingImport(userID)
		h.send(newPlainMessage(chatID, msgImportPrompt))

	case "reset":
		confirm := newPlainMessage(chatID, msgResetConfirm)
		confirm.ReplyMarkup = buildResetKeyboard()
		h.send(confirm)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) markPendingImport(userID int64) {
	h.importMu.Lock()
	defer h.importMu.Unlock()
	h.pendingImports[userID] = true
}

// takePendingImport reports whether the user asked for an import and clears the flag.
func (h *Handler) takePendingImport(userID int64) bool {
	h.importMu.Lock()
	defer h.importMu.Unlock()

	pending := h.pendingImports[userID]
	delete(h.pendingImports, userID)
	return pending
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the loading state of a button, optionally with a toast.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Warn("callback answer error",
			zap.String("callback_id", cb.ID),
			zap.Error(err),
		)
	}
}
