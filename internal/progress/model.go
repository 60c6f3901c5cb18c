package progress

import (
	"time"

	"github.com/2beens/gymrats/internal/achievements"
	"github.com/2beens/gymrats/internal/levels"
)

// Completion is the durable record of a finished plan day.
type Completion struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	PlanID      int64     `json:"planId"`
	DayName     string    `json:"dayName"`
	CompletedAt time.Time `json:"completedAt"`
	CompletedOn string    `json:"completedOn"`
}

// WeekWindow bounds a week by date keys, From inclusive and To exclusive.
type WeekWindow struct {
	From string
	To   string
}

type Award struct {
	DailyXP int
	BonusXP int
}

func (a Award) Total() int {
	return a.DailyXP + a.BonusXP
}

// AwardFunc decides the xp for a new completion given the distinct day names
// completed in its week before and after it was recorded.
type AwardFunc func(before, after []string) Award

type RecordResult struct {
	CompletionID int64
	Before       []string
	After        []string
	Award        Award
	TotalXP      int
}

type CompletionResult struct {
	Message              string                     `json:"message"`
	AllDone              bool                       `json:"allDone"`
	RestDay              bool                       `json:"restDay"`
	WeekCompleted        bool                       `json:"weekCompleted"`
	DailyXP              int                        `json:"dailyXp"`
	BonusXP              int                        `json:"bonusXp"`
	GainedXP             int                        `json:"gainedXp"`
	TotalXP              int                        `json:"newXp"`
	Level                levels.Resolution          `json:"levelInfo"`
	UnlockedAchievements []achievements.Achievement `json:"unlockedAchievements"`
}

type WeekCount struct {
	WeekKey string `json:"weekKey"`
	Count   int    `json:"count"`
}

type DayCount struct {
	DayName string `json:"dayName"`
	Count   int    `json:"count"`
}

// DateCount is the number of completions logged on one calendar date.
type DateCount struct {
	Date  string
	Count int
}

type Stats struct {
	TotalWorkouts    int         `json:"totalWorkouts"`
	CurrentStreak    int         `json:"currentStreak"`
	WeeklyData       []WeekCount `json:"weeklyData"`
	WorkoutFrequency []DayCount  `json:"workoutFrequency"`
}
