package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// ReminderConfig configures streak reminders.
type ReminderConfig struct {
	Schedule string // cron spec, e.g. "0 * * * *"
	Window   entities.ReminderWindow
}

// ReminderService reminds learners whose streak is about to break.
type ReminderService struct {
	progress ProgressStore
	catalog  RootRepository
	notifier ReminderNotifier
	cfg      ReminderConfig
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger

	// sent holds the calendar day each profile was last reminded on.
	mu   sync.Mutex
	sent map[int64]time.Time
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	progress ProgressStore,
	catalog RootRepository,
	cfg ReminderConfig,
	loc *time.Location,
	logger *zap.Logger,
) *ReminderService {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 * * * *"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		progress: progress,
		catalog:  catalog,
		cfg:      cfg,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
		sent:     make(map[int64]time.Time),
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// SetClock replaces the time source.
func (s *ReminderService) SetClock(now func() time.Time) {
	s.now = now
}

// Start runs the reminder schedule until ctx is done.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc))

	_, err := c.AddFunc(s.cfg.Schedule, func() {
		s.logger.Debug("cron triggered: processing streak reminders")
		sent, err := s.SendDueReminders(ctx)
		if err != nil {
			s.logger.Error("failed to send streak reminders", zap.Error(err))
			return
		}
		s.logger.Info("streak reminders processed", zap.Int("sent", sent))
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.cfg.Schedule, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.cfg.Schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDueReminders notifies every profile whose streak is at risk and
// returns the number of reminders sent. A profile is reminded at most once
// per calendar day.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, fmt.Errorf("notifier not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.cfg.Window.Contains(now, s.loc) {
		return 0, nil
	}

	profiles, err := s.progress.Profiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	today := entities.CalendarDay(now, s.loc)
	sent := 0

	for _, userID := range profiles {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if day, ok := s.sent[userID]; ok && day.Equal(today) {
			continue
		}

		p := s.progress.Load(ctx, userID)
		if !entities.StreakAtRisk(p, now, s.loc) {
			continue
		}

		if err := s.notifier.SendReminder(userID, s.buildPayload(p)); err != nil {
			s.logger.Error("failed to send reminder",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			continue
		}

		s.sent[userID] = today
		sent++
	}

	return sent, nil
}

func (s *ReminderService) buildPayload(p *entities.LearnerProgress) entities.ReminderPayload {
	payload := entities.ReminderPayload{
		Streak:   p.StudyStreak,
		Mastered: len(p.MasteredItems),
		Level:    p.Level,
	}

	if all := s.catalog.GetAll(); len(all) > 0 {
		payload.NextRoot = all[p.CurrentItemIndex%len(all)]
	}
	return payload
}
