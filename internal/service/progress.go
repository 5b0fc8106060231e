package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
	"github.com/aliskhannn/wordroots-bot/internal/storage"
)

// ProgressService owns the persistent learning state of every profile:
// mastered roots, level, streak, counters and the achievement log.
type ProgressService struct {
	backend storage.Backend
	catalog RootRepository
	loc     *time.Location
	now     func() time.Time
	logger  *zap.Logger

	// mu serializes read-modify-write cycles on the backend.
	mu sync.Mutex
}

var _ ProgressStore = (*ProgressService)(nil)

// NewProgressService creates a ProgressService. Calendar days for the
// streak are counted in loc.
func NewProgressService(
	backend storage.Backend,
	catalog RootRepository,
	loc *time.Location,
	logger *zap.Logger,
) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		backend: backend,
		catalog: catalog,
		loc:     loc,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock replaces the time source.
func (s *ProgressService) SetClock(now func() time.Time) {
	s.now = now
}

// Location returns the timezone streak days are counted in.
func (s *ProgressService) Location() *time.Location {
	return s.loc
}

// Load returns the stored progress of a profile. It never fails: a
// missing, unreadable or corrupt record yields defaults.
func (s *ProgressService) Load(ctx context.Context, userID int64) *entities.LearnerProgress {
	p, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to read progress, using defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return entities.NewLearnerProgress()
	}
	return p
}

// load reads the record. Corrupt data degrades to defaults, backend
// failures are returned so mutations never overwrite a record they could not read.
func (s *ProgressService) load(ctx context.Context, userID int64) (*entities.LearnerProgress, error) {
	data, err := s.backend.Get(ctx, storage.ProgressKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return entities.NewLearnerProgress(), nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	p, err := decodeStored(data)
	if err != nil {
		s.logger.Warn("corrupt progress record, using defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return entities.NewLearnerProgress(), nil
	}
	return p, nil
}

// Save persists the whole record, overwriting the previous state.
func (s *ProgressService) Save(ctx context.Context, userID int64, p *entities.LearnerProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, userID, p)
}

func (s *ProgressService) save(ctx context.Context, userID int64, p *entities.LearnerProgress) error {
	p.Normalize()

	data, err := encodeRecord(p, nil)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.backend.Put(ctx, storage.ProgressKey(userID), data); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

// update runs fn on the current record and persists the result.
func (s *ProgressService) update(
	ctx context.Context,
	userID int64,
	fn func(p *entities.LearnerProgress) error,
) (*entities.LearnerProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// MarkMastered adds the item to the mastered set, recomputes the level and
// records a study event. Marking an item twice keeps a single entry.
func (s *ProgressService) MarkMastered(ctx context.Context, userID int64, itemID int) (*entities.LearnerProgress, error) {
	if _, err := s.catalog.GetByID(itemID); err != nil {
		return nil, err
	}

	return s.update(ctx, userID, func(p *entities.LearnerProgress) error {
		if p.AddMastered(itemID) {
			s.logger.Debug("root mastered",
				zap.Int64("user_id", userID),
				zap.Int("root_id", itemID),
				zap.Int("mastered", len(p.MasteredItems)),
			)
		}
		p.RecordStudy(s.now(), s.loc)
		return nil
	})
}

// UnlockAchievement appends key to the log. It reports false when the key
// was already unlocked.
func (s *ProgressService) UnlockAchievement(ctx context.Context, userID int64, key entities.AchievementKey) (bool, error) {
	if _, ok := entities.LookupAchievement(key); !ok {
		return false, entities.NewValidationError("key", fmt.Sprintf("unknown achievement %q", key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	if !p.Unlock(key, s.now()) {
		return false, nil
	}
	if err := s.save(ctx, userID, p); err != nil {
		return false, err
	}

	s.logger.Info("achievement unlocked",
		zap.Int64("user_id", userID),
		zap.String("key", string(key)),
	)
	return true, nil
}

// CheckAchievements unlocks every achievement whose threshold the stored
// progress has reached and returns the newly unlocked ones.
func (s *ProgressService) CheckAchievements(ctx context.Context, userID int64) ([]entities.Achievement, error) {
	var unlocked []entities.Achievement

	_, err := s.update(ctx, userID, func(p *entities.LearnerProgress) error {
		unlocked = unlockDue(p, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logUnlocked(userID, unlocked)
	return unlocked, nil
}

// Achievements returns the unlock log with titles and icons resolved.
func (s *ProgressService) Achievements(ctx context.Context, userID int64) []entities.Achievement {
	p := s.Load(ctx, userID)

	out := make([]entities.Achievement, 0, len(p.Achievements))
	for _, u := range p.Achievements {
		out = append(out, u.Resolve())
	}
	return out
}

// RecordSession counts a finished quiz session: session counter, score,
// streak and the achievements a session can unlock.
func (s *ProgressService) RecordSession(
	ctx context.Context,
	userID int64,
	summary entities.Summary,
	mode entities.QuizMode,
) (*entities.LearnerProgress, []entities.Achievement, error) {
	var unlocked []entities.Achievement

	p, err := s.update(ctx, userID, func(p *entities.LearnerProgress) error {
		now := s.now()

		p.SessionCount++
		p.TotalScore += summary.Points
		p.RecordStudy(now, s.loc)

		if mode == entities.ModeChallenge && summary.Total > 0 && summary.CorrectCount == summary.Total {
			if p.Unlock(entities.AchievementPerfectChallenge, now) {
				unlocked = append(unlocked, p.Achievements[len(p.Achievements)-1].Resolve())
			}
		}
		unlocked = append(unlocked, unlockDue(p, now)...)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("session recorded",
		zap.Int64("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int("correct", summary.CorrectCount),
		zap.Int("total", summary.Total),
		zap.Int("session_count", p.SessionCount),
	)
	s.logUnlocked(userID, unlocked)

	return p, unlocked, nil
}

// SetCurrentItemIndex stores the learn-mode resume pointer.
func (s *ProgressService) SetCurrentItemIndex(ctx context.Context, userID int64, index int) error {
	if index < 0 {
		return entities.NewValidationError("currentItemIndex", "must not be negative")
	}

	_, err := s.update(ctx, userID, func(p *entities.LearnerProgress) error {
		p.CurrentItemIndex = index
		return nil
	})
	return err
}

// ExportSnapshot serializes the record and achievement log as a versioned
// JSON document accepted by ImportSnapshot.
func (s *ProgressService) ExportSnapshot(ctx context.Context, userID int64) ([]byte, error) {
	s.mu.Lock()
	p, err := s.load(ctx, userID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	exportedAt := s.now().UTC().Round(0)
	data, err := encodeRecord(p, &exportedAt)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot replaces the record with the snapshot. The snapshot is
// validated completely first; a malformed snapshot returns a
// ValidationError and leaves the stored record untouched.
func (s *ProgressService) ImportSnapshot(ctx context.Context, userID int64, blob []byte) error {
	p, err := decodeSnapshot(blob)
	if err != nil {
		return err
	}
	for _, id := range p.MasteredItems {
		if _, err := s.catalog.GetByID(id); err != nil {
			return entities.NewValidationError("masteredItems", fmt.Sprintf("unknown item id %d", id))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, userID, p); err != nil {
		return err
	}

	s.logger.Info("progress imported",
		zap.Int64("user_id", userID),
		zap.Int("mastered", len(p.MasteredItems)),
		zap.Int("achievements", len(p.Achievements)),
	)
	return nil
}

// Reset deletes the stored record.
func (s *ProgressService) Reset(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, storage.ProgressKey(userID)); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}

	s.logger.Info("progress reset", zap.Int64("user_id", userID))
	return nil
}

// Dashboard returns the progress overview of a profile.
func (s *ProgressService) Dashboard(ctx context.Context, userID int64) *entities.Dashboard {
	return entities.NewDashboard(s.Load(ctx, userID), s.catalog.Len())
}

// Profiles returns the ids of all profiles with stored progress.
func (s *ProgressService) Profiles(ctx context.Context) ([]int64, error) {
	keys, err := s.backend.List(ctx, storage.ProgressPrefix)
	if err != nil {
		return nil, fmt.Errorf("list progress keys: %w", err)
	}

	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		if id, ok := storage.ParseProgressKey(k); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *ProgressService) logUnlocked(userID int64, unlocked []entities.Achievement) {
	for _, a := range unlocked {
		s.logger.Info("achievement unlocked",
			zap.Int64("user_id", userID),
			zap.String("key", string(a.Key)),
		)
	}
}

func unlockDue(p *entities.LearnerProgress, now time.Time) []entities.Achievement {
	var unlocked []entities.Achievement
	for _, key := range entities.DueAchievements(p) {
		if p.Unlock(key, now) {
			unlocked = append(unlocked, p.Achievements[len(p.Achievements)-1].Resolve())
		}
	}
	return unlocked
}
