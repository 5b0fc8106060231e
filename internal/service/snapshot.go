package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// SnapshotVersion is the version of the persisted progress layout.
const SnapshotVersion = 1

// progressRecord is the persisted and exported layout of LearnerProgress.
type progressRecord struct {
	Version          int                 `json:"version"`
	Level            int                 `json:"level"`
	MasteredItems    []int               `json:"masteredItems"`
	StudyStreak      int                 `json:"studyStreak"`
	LastStudyDate    *time.Time          `json:"lastStudyDate"`
	SessionCount     int                 `json:"sessionCount"`
	TotalScore       int                 `json:"totalScore"`
	CurrentItemIndex int                 `json:"currentItemIndex"`
	Achievements     []achievementRecord `json:"achievements"`
	ExportedAt       *time.Time          `json:"exportedAt,omitempty"`
}

type achievementRecord struct {
	Key        entities.AchievementKey `json:"key"`
	UnlockedAt time.Time               `json:"unlockedAt"`
}

// importRecord mirrors progressRecord with pointers so missing fields can be told apart from zero values.
type importRecord struct {
	Version          *int                `json:"version"`
	Level            *int                `json:"level"`
	MasteredItems    *[]int              `json:"masteredItems"`
	StudyStreak      *int                `json:"studyStreak"`
	LastStudyDate    *time.Time          `json:"lastStudyDate"`
	SessionCount     *int                `json:"sessionCount"`
	TotalScore       *int                `json:"totalScore"`
	CurrentItemIndex *int                `json:"currentItemIndex"`
	Achievements     *[]achievementInput `json:"achievements"`
	ExportedAt       *time.Time          `json:"exportedAt"`
}

type achievementInput struct {
	Key        *entities.AchievementKey `json:"key"`
	UnlockedAt *time.Time               `json:"unlockedAt"`
}

func encodeRecord(p *entities.LearnerProgress, exportedAt *time.Time) ([]byte, error) {
	rec := progressRecord{
		Version:          SnapshotVersion,
		Level:            entities.LevelFor(len(p.MasteredItems)),
		MasteredItems:    p.MasteredItems,
		StudyStreak:      p.StudyStreak,
		SessionCount:     p.SessionCount,
		TotalScore:       p.TotalScore,
		CurrentItemIndex: p.CurrentItemIndex,
		Achievements:     make([]achievementRecord, 0, len(p.Achievements)),
		ExportedAt:       exportedAt,
	}
	if rec.MasteredItems == nil {
		rec.MasteredItems = []int{}
	}
	if !p.LastStudyDate.IsZero() {
		t := p.LastStudyDate.UTC()
		rec.LastStudyDate = &t
	}
	for _, a := range p.Achievements {
		rec.Achievements = append(rec.Achievements, achievementRecord{Key: a.Key, UnlockedAt: a.UnlockedAt.UTC()})
	}

	if exportedAt != nil {
		return json.MarshalIndent(rec, "", "  ")
	}
	return json.Marshal(rec)
}

// decodeStored reads a record written by encodeRecord. It is lenient:
// fields it does not know are ignored and the invariants are restored.
func decodeStored(data []byte) (*entities.LearnerProgress, error) {
	var rec progressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}

	p := &entities.LearnerProgress{
		MasteredItems:    rec.MasteredItems,
		StudyStreak:      rec.StudyStreak,
		SessionCount:     rec.SessionCount,
		TotalScore:       rec.TotalScore,
		CurrentItemIndex: rec.CurrentItemIndex,
	}
	if rec.LastStudyDate != nil {
		p.LastStudyDate = rec.LastStudyDate.UTC()
	}
	for _, a := range rec.Achievements {
		if _, ok := entities.LookupAchievement(a.Key); ok {
			p.Unlock(a.Key, a.UnlockedAt)
		}
	}
	p.Normalize()

	return p, nil
}

// decodeSnapshot validates an imported snapshot completely and returns the
// record it describes. Any deviation from the layout is a ValidationError.
func decodeSnapshot(blob []byte) (*entities.LearnerProgress, error) {
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.DisallowUnknownFields()

	var rec importRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, entities.NewValidationError("", fmt.Sprintf("malformed snapshot: %v", err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, entities.NewValidationError("", "trailing data after snapshot")
	}

	if rec.Version == nil {
		return nil, entities.NewValidationError("version", "missing")
	}
	if *rec.Version != SnapshotVersion {
		return nil, entities.NewValidationError("version", fmt.Sprintf("unsupported version %d", *rec.Version))
	}
	if rec.MasteredItems == nil {
		return nil, entities.NewValidationError("masteredItems", "missing")
	}

	p := entities.NewLearnerProgress()

	for _, id := range *rec.MasteredItems {
		if id <= 0 {
			return nil, entities.NewValidationError("masteredItems", fmt.Sprintf("invalid item id %d", id))
		}
	}
	p.SetMastered(*rec.MasteredItems)

	counters := []struct {
		name  string
		value *int
		dst   *int
	}{
		{"studyStreak", rec.StudyStreak, &p.StudyStreak},
		{"sessionCount", rec.SessionCount, &p.SessionCount},
		{"totalScore", rec.TotalScore, &p.TotalScore},
		{"currentItemIndex", rec.CurrentItemIndex, &p.CurrentItemIndex},
	}
	for _, c := range counters {
		if c.value == nil {
			continue
		}
		if *c.value < 0 {
			return nil, entities.NewValidationError(c.name, "must not be negative")
		}
		*c.dst = *c.value
	}

	if rec.Level != nil && *rec.Level < 1 {
		return nil, entities.NewValidationError("level", "must be at least 1")
	}

	if rec.LastStudyDate != nil {
		p.LastStudyDate = rec.LastStudyDate.UTC().Round(0)
	}

	if rec.Achievements != nil {
		for i, a := range *rec.Achievements {
			field := fmt.Sprintf("achievements[%d]", i)
			if a.Key == nil || a.UnlockedAt == nil {
				return nil, entities.NewValidationError(field, "key and unlockedAt are required")
			}
			if _, ok := entities.LookupAchievement(*a.Key); !ok {
				return nil, entities.NewValidationError(field, fmt.Sprintf("unknown achievement %q", *a.Key))
			}
			if !p.Unlock(*a.Key, *a.UnlockedAt) {
				return nil, entities.NewValidationError(field, fmt.Sprintf("duplicate achievement %q", *a.Key))
			}
		}
	}

	return p, nil
}
