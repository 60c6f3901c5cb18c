package plans

import (
	"encoding/json"
	"strings"
	"time"
)

type Kind string

const (
	KindTraining  Kind = "training"
	KindNutrition Kind = "nutrition"
)

type Activity struct {
	Name          string   `json:"name"`
	SetsReps      string   `json:"setsReps"`
	Tips          string   `json:"tips"`
	MuscleGroups  []string `json:"muscleGroups"`
	Difficulty    int      `json:"difficulty"`
	TutorialSteps []string `json:"tutorialSteps"`
}

// Day is one entry of a training plan. A day without exercises is a rest day.
type Day struct {
	DayName   string     `json:"dayName"`
	Exercises []Activity `json:"exercises"`
}

func (d Day) IsRestDay() bool {
	return len(d.Exercises) == 0
}

type TrainingPlan struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Level           string    `json:"level"`
	Objective       string    `json:"objective"`
	Frequency       string    `json:"frequency"`
	Equipment       string    `json:"equipment"`
	TimePerSession  string    `json:"timePerSession"`
	Days            []Day     `json:"plan"`
	Recommendations []string  `json:"recommendations"`
	Signature       string    `json:"signature"`
	CreatedAt       time.Time `json:"dateGenerated"`
}

// Day finds a plan day by name, ignoring case and surrounding whitespace.
func (p *TrainingPlan) Day(name string) (Day, bool) {
	name = strings.TrimSpace(name)
	for _, d := range p.Days {
		if strings.EqualFold(d.DayName, name) {
			return d, true
		}
	}
	return Day{}, false
}

type NutritionPlan struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	UserInputs json.RawMessage `json:"userInputs,omitempty"`
	Plan       json.RawMessage `json:"plan"`
	Tips       json.RawMessage `json:"tips,omitempty"`
	Signature  string          `json:"signature"`
	CreatedAt  time.Time       `json:"dateGenerated"`
}

// SignedDays is a freshly generated plan body ready to be handed to a client.
type SignedDays struct {
	Days      []Day  `json:"plan"`
	Signature string `json:"signature"`
}

// StoredPlan is the storage form of any plan kind, content kept as JSON.
type StoredPlan struct {
	ID        int64
	UserID    int64
	Kind      Kind
	Content   []byte
	Signature string
	CreatedAt time.Time
}
