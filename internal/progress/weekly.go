package progress

import (
	"strings"

	"github.com/2beens/gymrats/internal/plans"
)

const (
	DailyXP       = 10
	WeeklyBonusXP = 50
)

type WeeklyResult struct {
	Complete bool
	Bonus    int
}

// ScheduledDays returns the names of plan days that have at least one exercise.
func ScheduledDays(plan *plans.TrainingPlan) []string {
	if plan == nil {
		return nil
	}
	scheduled := make([]string, 0, len(plan.Days))
	for _, d := range plan.Days {
		if !d.IsRestDay() {
			scheduled = append(scheduled, d.DayName)
		}
	}
	return scheduled
}

// Evaluate reports whether every scheduled day is among the completed ones.
// A plan without scheduled days can never complete a week.
func Evaluate(scheduled, completed []string) WeeklyResult {
	if len(scheduled) == 0 {
		return WeeklyResult{}
	}

	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[normalizeDayName(c)] = true
	}
	for _, s := range scheduled {
		if !done[normalizeDayName(s)] {
			return WeeklyResult{}
		}
	}

	return WeeklyResult{
		Complete: true,
		Bonus:    WeeklyBonusXP,
	}
}

// EvaluateTransition grants the bonus only on the completion that moves the
// week from incomplete to complete.
func EvaluateTransition(scheduled, before, after []string) WeeklyResult {
	afterResult := Evaluate(scheduled, after)
	if !afterResult.Complete {
		return afterResult
	}
	if Evaluate(scheduled, before).Complete {
		return WeeklyResult{Complete: true}
	}
	return afterResult
}

func normalizeDayName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
