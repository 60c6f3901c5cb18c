package achievements

import "time"

type CriteriaType string

const (
	CriteriaTotalWorkouts CriteriaType = "totalWorkouts"
	CriteriaStreak        CriteriaType = "streak"
	CriteriaLevel         CriteriaType = "level"
)

type Criteria struct {
	Type  CriteriaType `json:"type"`
	Value int          `json:"value"`
}

type Achievement struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	MascotImageURL string     `json:"mascotImageUrl"`
	Criteria       Criteria   `json:"criteria"`
	Unlocked       bool       `json:"unlocked"`
	UnlockedAt     *time.Time `json:"unlockedAt,omitempty"`
}

// Progress is the user state achievements are judged against.
// Level is the 1-based tier index.
type Progress struct {
	TotalWorkouts int
	Streak        int
	Level         int
}

// Met reports whether p reaches the criteria threshold. Thresholds are inclusive.
func (c Criteria) Met(p Progress) bool {
	switch c.Type {
	case CriteriaTotalWorkouts:
		return p.TotalWorkouts >= c.Value
	case CriteriaStreak:
		return p.Streak >= c.Value
	case CriteriaLevel:
		return p.Level >= c.Value
	default:
		return false
	}
}

// Evaluate returns the catalog entries whose criteria p meets.
func Evaluate(catalog []Achievement, p Progress) []Achievement {
	var met []Achievement
	for _, a := range catalog {
		if a.Criteria.Met(p) {
			met = append(met, a)
		}
	}
	return met
}
