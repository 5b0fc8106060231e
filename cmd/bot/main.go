package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/config"
	"github.com/aliskhannn/wordroots-bot/internal/delivery/telegram"
	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
	"github.com/aliskhannn/wordroots-bot/internal/infra/postgres"
	"github.com/aliskhannn/wordroots-bot/internal/infra/sqlite"
	"github.com/aliskhannn/wordroots-bot/internal/logger"
	"github.com/aliskhannn/wordroots-bot/internal/repository"
	"github.com/aliskhannn/wordroots-bot/internal/service"
	"github.com/aliskhannn/wordroots-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	loc, err := entities.ParseTimezoneLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("parse timezone: %w", err)
	}

	catalog, err := repository.NewCatalogRepository(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	lg.Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("roots", catalog.Len()),
	)

	backend, closeBackend, err := openBackend(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeBackend()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("create bot api: %w", err)
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	rootService := service.NewRootService(catalog)
	progressService := service.NewProgressService(backend, catalog, loc, lg.Named("progress"))
	quizService := service.NewQuizService(catalog, progressService, service.QuizConfig{
		ChallengeQuestions: cfg.Quiz.ChallengeQuestions,
		LearnGoal:          cfg.Quiz.LearnGoal,
	}, lg.Named("quiz"))

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		rootService,
		progressService,
		quizService,
		storage.NewQuizStorage(),
		storage.NewReminderStorage(),
	)

	if cfg.Reminders.Enabled {
		reminderService := service.NewReminderService(progressService, catalog, service.ReminderConfig{
			Schedule: cfg.Reminders.Schedule,
			Window: entities.ReminderWindow{
				StartHour: cfg.Reminders.StartHour,
				EndHour:   cfg.Reminders.EndHour,
			},
		}, loc, lg.Named("reminders"))
		reminderService.SetNotifier(handler)

		go func() {
			if err := reminderService.Start(ctx); err != nil {
				lg.Error("reminder service failed", zap.Error(err))
			}
		}()
	}

	return handler.Run(ctx)
}

// openBackend opens the progress storage selected in the config.
func openBackend(ctx context.Context, cfg *config.Config, lg *zap.Logger) (storage.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		lg.Warn("using in-memory progress storage, progress is lost on restart")
		return storage.NewMemoryBackend(), func() {}, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		kv := postgres.NewKV(pool)
		if err := kv.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		lg.Info("using postgres progress storage")
		return kv, pool.Close, nil

	default:
		kv, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		lg.Info("using sqlite progress storage", zap.String("path", cfg.Storage.SQLitePath))
		return kv, func() {
			if err := kv.Close(); err != nil {
				lg.Warn("failed to close sqlite", zap.Error(err))
			}
		}, nil
	}
}

func commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "learn", Description: "Learn the next roots"},
		{Command: "challenge", Description: "Play a challenge stage (usage: /challenge 2)"},
		{Command: "roots", Description: "Browse and search roots"},
		{Command: "root", Description: "Show one root (usage: /root 12)"},
		{Command: "progress", Description: "Show progress"},
		{Command: "export", Description: "Download a progress backup"},
		{Command: "import", Description: "Restore a progress backup"},
		{Command: "reset", Description: "Delete all progress"},
		{Command: "help", Description: "Help"},
	}
}
