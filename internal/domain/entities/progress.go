package entities

import (
	"sort"
	"time"
)

// MasteryStepSize is the number of mastered items required per level.
const MasteryStepSize = 10

// LearnerProgress stores the persistent learning state of one learner.
//
// Level is derived from MasteredItems and must never be set on its own;
// use SetMastered or Normalize after changing MasteredItems.
type LearnerProgress struct {
	Level            int        // 1 + len(MasteredItems)/MasteryStepSize
	MasteredItems    []int      // sorted ids of mastered catalog items, no duplicates
	StudyStreak      int        // consecutive calendar days with study activity
	LastStudyDate    time.Time  // zero when the learner has never studied
	SessionCount     int        // completed quiz sessions
	TotalScore       int        // accumulated session points
	CurrentItemIndex int        // resume pointer into the catalog
	Achievements     []Unlocked // append-only unlock log
}

// Unlocked is a persisted achievement unlock record.
type Unlocked struct {
	Key        AchievementKey
	UnlockedAt time.Time
}

// NewLearnerProgress creates a progress record with default values.
func NewLearnerProgress() *LearnerProgress {
	return &LearnerProgress{
		Level:         1,
		MasteredItems: []int{},
		Achievements:  []Unlocked{},
	}
}

// LevelFor returns the level reached with the given number of mastered items.
func LevelFor(mastered int) int {
	if mastered < 0 {
		mastered = 0
	}
	return 1 + mastered/MasteryStepSize
}

// IsMastered reports whether the item id is in the mastered set.
func (p *LearnerProgress) IsMastered(itemID int) bool {
	i := sort.SearchInts(p.MasteredItems, itemID)
	return i < len(p.MasteredItems) && p.MasteredItems[i] == itemID
}

// AddMastered inserts the item into the mastered set and recomputes the level.
// It returns false if the item was already mastered.
func (p *LearnerProgress) AddMastered(itemID int) bool {
	i := sort.SearchInts(p.MasteredItems, itemID)
	if i < len(p.MasteredItems) && p.MasteredItems[i] == itemID {
		return false
	}

	p.MasteredItems = append(p.MasteredItems, 0)
	copy(p.MasteredItems[i+1:], p.MasteredItems[i:])
	p.MasteredItems[i] = itemID
	p.Level = LevelFor(len(p.MasteredItems))

	return true
}

// SetMastered replaces the mastered set, removing duplicates, and recomputes the level.
func (p *LearnerProgress) SetMastered(ids []int) {
	set := make([]int, len(ids))
	copy(set, ids)
	sort.Ints(set)

	unique := set[:0]
	for i, id := range set {
		if i > 0 && set[i-1] == id {
			continue
		}
		unique = append(unique, id)
	}

	p.MasteredItems = unique
	p.Level = LevelFor(len(unique))
}

// Normalize restores the derived invariants of the record.
func (p *LearnerProgress) Normalize() {
	if p.MasteredItems == nil {
		p.MasteredItems = []int{}
	}
	if p.Achievements == nil {
		p.Achievements = []Unlocked{}
	}
	p.SetMastered(p.MasteredItems)
	if p.StudyStreak < 0 {
		p.StudyStreak = 0
	}
	if p.SessionCount < 0 {
		p.SessionCount = 0
	}
	if p.TotalScore < 0 {
		p.TotalScore = 0
	}
	if p.CurrentItemIndex < 0 {
		p.CurrentItemIndex = 0
	}
}

// ToNextLevel returns how many more items must be mastered to level up.
func (p *LearnerProgress) ToNextLevel() int {
	return max(0, p.Level*MasteryStepSize-len(p.MasteredItems))
}

// RecordStudy updates the last study date and the streak for a study event at now.
//
// The streak is counted in calendar days of loc:
//  1. Same day as the last study: unchanged, at least 1.
//  2. The day after the last study: incremented.
//  3. Any other gap or the first study ever: restarted at 1.
func (p *LearnerProgress) RecordStudy(now time.Time, loc *time.Location) {
	if p.LastStudyDate.IsZero() {
		p.StudyStreak = 1
	} else {
		switch DaysBetween(p.LastStudyDate, now, loc) {
		case 0:
			p.StudyStreak = max(1, p.StudyStreak)
		case 1:
			p.StudyStreak++
		default:
			p.StudyStreak = 1
		}
	}

	p.LastStudyDate = now.UTC().Round(0)
}

// StudiedOn reports whether the last study event happened on the same calendar day as t.
func (p *LearnerProgress) StudiedOn(t time.Time, loc *time.Location) bool {
	return !p.LastStudyDate.IsZero() && DaysBetween(p.LastStudyDate, t, loc) == 0
}

// HasAchievement reports whether the key is already in the unlock log.
func (p *LearnerProgress) HasAchievement(key AchievementKey) bool {
	for _, a := range p.Achievements {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Unlock appends the key to the unlock log. It is a no-op returning false
// if the key is already present.
func (p *LearnerProgress) Unlock(key AchievementKey, at time.Time) bool {
	if p.HasAchievement(key) {
		return false
	}
	p.Achievements = append(p.Achievements, Unlocked{Key: key, UnlockedAt: at.UTC().Round(0)})
	return true
}

// Clone returns a deep copy of the record.
func (p *LearnerProgress) Clone() *LearnerProgress {
	c := *p
	c.MasteredItems = append([]int{}, p.MasteredItems...)
	c.Achievements = append([]Unlocked{}, p.Achievements...)
	return &c
}
