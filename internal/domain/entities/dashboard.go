package entities

// Dashboard is the progress overview of a learner.
type Dashboard struct {
	Progress     *LearnerProgress
	Achievements []Achievement           // unlocked, in unlock order
	Locked       []AchievementDefinition // not unlocked yet
	CatalogSize  int
	Percentage   int // mastered share of the catalog, 0-100
	ToNextLevel  int
}

// NewDashboard builds the overview of p against a catalog of the given size.
func NewDashboard(p *LearnerProgress, catalogSize int) *Dashboard {
	d := &Dashboard{
		Progress:    p,
		CatalogSize: catalogSize,
		ToNextLevel: p.ToNextLevel(),
	}

	for _, u := range p.Achievements {
		d.Achievements = append(d.Achievements, u.Resolve())
	}
	for _, def := range achievementDefinitions {
		if !p.HasAchievement(def.Key) {
			d.Locked = append(d.Locked, def)
		}
	}

	if catalogSize > 0 {
		d.Percentage = min(100, len(p.MasteredItems)*100/catalogSize)
	}

	return d
}
