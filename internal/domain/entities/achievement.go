package entities

import "time"

// AchievementKey identifies an achievement.
type AchievementKey string

const (
	AchievementFirstRoot        AchievementKey = "firstRoot"
	AchievementRoots50          AchievementKey = "roots50"
	AchievementRoots100         AchievementKey = "roots100"
	AchievementPerfectChallenge AchievementKey = "perfectChallenge"
	AchievementStreak7          AchievementKey = "streak7"
)

// Mastery thresholds that unlock an achievement.
const (
	FirstRootThreshold = 1
	Roots50Threshold   = 50
	Roots100Threshold  = 100
	StreakThreshold    = 7
)

// Achievement is an unlocked achievement with its presentation fields resolved.
type Achievement struct {
	Key         AchievementKey
	Title       string
	Description string
	Icon        string
	UnlockedAt  time.Time
}

// AchievementDefinition describes an achievement that can be unlocked.
type AchievementDefinition struct {
	Key         AchievementKey
	Title       string
	Description string
	Icon        string
	// MasteredAtLeast unlocks the achievement once the learner has mastered
	// that many items. Zero means the achievement has another trigger.
	MasteredAtLeast int
}

var achievementDefinitions = []AchievementDefinition{
	{
		Key:             AchievementFirstRoot,
		Title:           "First root",
		Description:     "Mastered your first word root",
		Icon:            "🌱",
		MasteredAtLeast: FirstRootThreshold,
	},
	{
		Key:             AchievementRoots50,
		Title:           "Root collector",
		Description:     "Mastered 50 word roots",
		Icon:            "🌿",
		MasteredAtLeast: Roots50Threshold,
	},
	{
		Key:             AchievementRoots100,
		Title:           "Root master",
		Description:     "Mastered 100 word roots",
		Icon:            "🌳",
		MasteredAtLeast: Roots100Threshold,
	},
	{
		Key:         AchievementPerfectChallenge,
		Title:       "Flawless",
		Description: "Finished a challenge without a single mistake",
		Icon:        "🏆",
	},
	{
		Key:         AchievementStreak7,
		Title:       "Week of words",
		Description: "Studied seven days in a row",
		Icon:        "🔥",
	},
}

// AchievementDefinitions returns the definition table in display order.
func AchievementDefinitions() []AchievementDefinition {
	out := make([]AchievementDefinition, len(achievementDefinitions))
	copy(out, achievementDefinitions)
	return out
}

// LookupAchievement returns the definition for key.
func LookupAchievement(key AchievementKey) (AchievementDefinition, bool) {
	for _, d := range achievementDefinitions {
		if d.Key == key {
			return d, true
		}
	}
	return AchievementDefinition{}, false
}

// Resolve attaches the presentation fields of the definition to an unlock record.
func (u Unlocked) Resolve() Achievement {
	d, _ := LookupAchievement(u.Key)
	return Achievement{
		Key:         u.Key,
		Title:       d.Title,
		Description: d.Description,
		Icon:        d.Icon,
		UnlockedAt:  u.UnlockedAt,
	}
}

// DueAchievements returns the keys whose triggers are met by p but which
// are not unlocked yet. Thresholds are checked with >=, so a record that
// jumps past a threshold still unlocks it.
func DueAchievements(p *LearnerProgress) []AchievementKey {
	var due []AchievementKey
	mastered := len(p.MasteredItems)

	for _, d := range achievementDefinitions {
		if p.HasAchievement(d.Key) {
			continue
		}

		switch {
		case d.MasteredAtLeast > 0 && mastered >= d.MasteredAtLeast:
			due = append(due, d.Key)
		case d.Key == AchievementStreak7 && p.StudyStreak >= StreakThreshold:
			due = append(due, d.Key)
		}
	}

	return due
}
