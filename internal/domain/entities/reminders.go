package entities

import "time"

// ReminderPayload is used to build a streak reminder message.
type ReminderPayload struct {
	Streak   int   // streak that will be lost if the learner skips today
	Mastered int   // number of mastered roots
	Level    int   // current level
	NextRoot *Root // root the learn mode resumes at, may be nil
}

// ReminderWindow is the local time range in which reminders may be sent.
type ReminderWindow struct {
	StartHour int // inclusive, 0-23
	EndHour   int // exclusive, 1-24
}

// Contains reports whether the hour of t in loc is inside the window.
func (w ReminderWindow) Contains(t time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	h := t.In(loc).Hour()
	if w.StartHour <= w.EndHour {
		return h >= w.StartHour && h < w.EndHour
	}
	// Window wraps midnight, e.g. 20-2.
	return h >= w.StartHour || h < w.EndHour
}

// StreakAtRisk reports whether the learner studied yesterday but not yet
// today, so the streak is lost if they skip the rest of the day.
func StreakAtRisk(p *LearnerProgress, now time.Time, loc *time.Location) bool {
	if p.StudyStreak <= 0 || p.LastStudyDate.IsZero() {
		return false
	}
	return DaysBetween(p.LastStudyDate, now, loc) == 1
}
