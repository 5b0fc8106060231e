package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

func (h *Handler) learnHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, q, err := h.quizService.StartLearning(ctx, userID)
		if err != nil {
			return err
		}
		h.sendQuizStart(chatID, session, q)
		return nil
	}
}

// challengeCommandHandler starts the stage given as argument. Without an
// argument it offers the stage picker.
func (h *Handler) challengeCommandHandler(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args = strings.TrimSpace(args)
		if args == "" {
			msg := newPlainMessage(chatID, fmt.Sprintf("🎯 Pick a stage (1-%d):", h.quizService.StageCount()))
			msg.ReplyMarkup = buildStagesKeyboard(h.quizService.StageCount())
			h.send(msg)
			return nil
		}

		stage, err := strconv.Atoi(args)
		if err != nil {
			h.sendError(chatID, fmt.Sprintf(msgStageNotFound, h.quizService.StageCount()))
			return nil
		}
		return h.challengeHandler(userID, stage)(ctx, chatID)
	}
}

func (h *Handler) challengeHandler(userID int64, stage int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, q, err := h.quizService.StartChallenge(ctx, userID, stage)
		if err != nil {
			if entities.IsNotFound(err) {
				h.sendError(chatID, fmt.Sprintf(msgStageNotFound, h.quizService.StageCount()))
				return nil
			}
			return err
		}
		h.sendQuizStart(chatID, session, q)
		return nil
	}
}

// sendQuizStart stores the session and sends its first question. A new
// session replaces any unfinished one.
func (h *Handler) sendQuizStart(chatID int64, session entities.QuizSession, q *entities.Question) {
	h.quizStorage.Store(session)

	text := formatQuizStart(session) + "\n\n" + formatQuestion(session, q)
	msg := newMessage(chatID, text)
	msg.ReplyMarkup = buildAnswerKeyboard(session, q)
	h.send(msg)
}

func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	userID := cb.From.ID

	session, ok := h.quizStorage.GetByID(userID, data.param(0))
	if !ok {
		h.answerCallback(cb, msgSessionExpired)
		return
	}

	questionIdx, ok1 := data.intParam(1)
	choice, ok2 := data.intParam(2)
	if !ok1 || !ok2 {
		h.logger.Warn("invalid answer callback", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}
	if questionIdx != session.Current || session.Phase != entities.PhaseAwaitingAnswer {
		h.answerCallback(cb, msgAlreadyAnswered)
		return
	}

	q := session.CurrentQuestion()
	out, err := h.quizService.Answer(ctx, userID, session, choice)
	if err != nil {
		h.logger.Warn("failed to answer question",
			zap.Int64("user_id", userID),
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		h.answerCallback(cb, msgInternalError)
		return
	}
	h.quizStorage.Store(out.Session)

	text := formatAnswerFeedback(out.Session, q, out.Result)
	if a := formatAchievements(out.Achievements); a != "" {
		text += "\n\n" + a
	}

	kb := buildFeedbackKeyboard(out.Session, out.Result.IsCorrect)
	h.edit(cb, text, &kb)

	if out.Result.IsCorrect {
		h.answerCallback(cb, "✅")
	} else {
		h.answerCallback(cb, "❌")
	}
}

func (h *Handler) handleRetryCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	session, ok := h.quizStorage.GetByID(cb.From.ID, data.param(0))
	if !ok {
		h.answerCallback(cb, msgSessionExpired)
		return
	}

	next, q, err := h.quizService.Retry(session)
	if err != nil {
		h.answerCallback(cb, "")
		return
	}
	h.quizStorage.Store(next)

	kb := buildAnswerKeyboard(next, q)
	h.edit(cb, formatQuestion(next, q), &kb)
	h.answerCallback(cb, "")
}

func (h *Handler) handleNextCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	userID := cb.From.ID

	session, ok := h.quizStorage.GetByID(userID, data.param(0))
	if !ok {
		h.answerCallback(cb, msgSessionExpired)
		return
	}

	next, q, err := h.quizService.Advance(ctx, userID, session)
	if err != nil {
		if errors.Is(err, entities.ErrRetryRequired) {
			h.answerCallback(cb, "Answer this question correctly first.")
			return
		}
		h.answerCallback(cb, "")
		return
	}

	if q != nil {
		h.quizStorage.Store(next)
		kb := buildAnswerKeyboard(next, q)
		h.edit(cb, formatQuestion(next, q), &kb)
		h.answerCallback(cb, "")
		return
	}

	// The stored session stays until Finish succeeds so Next can be retried.
	out, err := h.quizService.Finish(ctx, userID, next)
	if err != nil {
		h.logger.Error("failed to finish quiz",
			zap.Int64("user_id", userID),
			zap.String("session_id", next.ID),
			zap.Error(err),
		)
		h.answerCallback(cb, msgInternalError)
		return
	}
	h.quizStorage.Delete(userID)

	text := formatSummary(next.Mode, out.Summary, out.Progress)
	if a := formatAchievements(out.Achievements); a != "" {
		text += "\n\n" + a
	}

	kb := buildSummaryKeyboard(next, h.quizService.StageCount())
	h.edit(cb, text, &kb)
	h.answerCallback(cb, "")
}
