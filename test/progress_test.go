//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/gymrats/internal/integrity"
	"github.com/2beens/gymrats/internal/plans"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completionResponse struct {
	Message              string `json:"message"`
	RestDay              bool   `json:"restDay"`
	WeekCompleted        bool   `json:"weekCompleted"`
	DailyXP              int    `json:"dailyXp"`
	BonusXP              int    `json:"bonusXp"`
	GainedXP             int    `json:"gainedXp"`
	TotalXP              int    `json:"newXp"`
	UnlockedAchievements []struct {
		Name string `json:"name"`
	} `json:"unlockedAchievements"`
}

func testPlanDays() []plans.Day {
	activity := func() plans.Activity {
		return plans.Activity{
			Name:          gofakeit.HipsterWord(),
			SetsReps:      "3x12",
			Tips:          gofakeit.Sentence(6),
			MuscleGroups:  []string{"chest"},
			Difficulty:    gofakeit.Number(1, 5),
			TutorialSteps: []string{gofakeit.Sentence(4)},
		}
	}
	return []plans.Day{
		{DayName: "Monday", Exercises: []plans.Activity{activity(), activity()}},
		{DayName: "Wednesday", Exercises: []plans.Activity{activity()}},
		{DayName: "Sunday", Exercises: []plans.Activity{}},
	}
}

func (s *IntegrationTestSuite) saveSignedTraining(ctx context.Context, user testUser, days []plans.Day) {
	signer, err := integrity.NewSigner(testIntegritySecret)
	require.NoError(s.T(), err)
	signature, err := signer.Sign(days)
	require.NoError(s.T(), err)

	s.doJSON(ctx, http.MethodPost, "/training", user.Token, plans.SaveTrainingRequest{
		Level:           "beginner",
		Objective:       "hypertrophy",
		Frequency:       "3x",
		Equipment:       "gym",
		TimePerSession:  "60min",
		Days:            days,
		Recommendations: []string{gofakeit.Sentence(5)},
		Signature:       signature,
	}, http.StatusOK, nil)
}

func (s *IntegrationTestSuite) TestTrainingPlan_Integrity() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)

	s.requireError(ctx, http.MethodGet, "/training", user.Token, nil, http.StatusNotFound, "not_found")

	days := testPlanDays()
	s.saveSignedTraining(ctx, user, days)

	var plan plans.TrainingPlan
	s.doJSON(ctx, http.MethodGet, "/training", user.Token, nil, http.StatusOK, &plan)
	require.Len(t, plan.Days, len(days))
	assert.Equal(t, "Monday", plan.Days[0].DayName)
	assert.NotEmpty(t, plan.Signature)

	// tampered plan body keeps the old signature
	tampered := testPlanDays()
	tampered[0].Exercises[0].SetsReps = "10x100"
	s.requireError(ctx, http.MethodPost, "/training", user.Token, plans.SaveTrainingRequest{
		Level:          plan.Level,
		Objective:      plan.Objective,
		Frequency:      plan.Frequency,
		Equipment:      plan.Equipment,
		TimePerSession: plan.TimePerSession,
		Days:           tampered,
		Signature:      plan.Signature,
	}, http.StatusForbidden, "integrity")

	s.requireError(ctx, http.MethodPost, "/training", user.Token, plans.SaveTrainingRequest{
		Level:          plan.Level,
		Objective:      plan.Objective,
		Frequency:      plan.Frequency,
		Equipment:      plan.Equipment,
		TimePerSession: plan.TimePerSession,
		Days:           plan.Days,
	}, http.StatusBadRequest, "validation")
}

func (s *IntegrationTestSuite) TestCompleteDay_WeeklyBonusAndStats() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.registerUser(ctx)

	// no plan yet
	s.requireError(ctx, http.MethodPost, "/training/complete-day", user.Token, map[string]string{
		"dayName": "Monday",
	}, http.StatusNotFound, "not_found")

	s.saveSignedTraining(ctx, user, testPlanDays())

	s.requireError(ctx, http.MethodPost, "/training/complete-day", user.Token, map[string]string{
		"dayName": "Friday",
	}, http.StatusBadRequest, "validation")

	var first completionResponse
	s.doJSON(ctx, http.MethodPost, "/training/complete-day", user.Token, map[string]string{
		"dayName": "monday",
	}, http.StatusOK, &first)
	assert.Equal(t, 10, first.DailyXP)
	assert.Zero(t, first.BonusXP)
	assert.False(t, first.WeekCompleted)
	assert.Equal(t, 10, first.TotalXP)
	require.Len(t, first.UnlockedAchievements, 1)
	assert.Equal(t, "First Rep", first.UnlockedAchievements[0].Name)

	s.requireError(ctx, http.MethodPost, "/training/complete-day", user.Token, map[string]string{
		"dayName": "Monday",
	}, http.StatusConflict, "conflict")

	var second completionResponse
	s.doJSON(ctx, http.MethodPost, "/training/complete-day", user.Token, map[string]string{
		"dayName": "Wednesday",
	}, http.StatusOK, &second)
	assert.True(t, second.WeekCompleted)
	assert.Equal(t, 10, second.DailyXP)
	assert.Equal(t, 50, second.BonusXP)
	assert.Equal(t, 70, second.TotalXP)
	assert.Empty(t, second.UnlockedAchievements)

	// rest day counts as a workout but gives no xp and no second bonus
	var rest completionResponse
	s.doJSON(ctx, http.MethodPost, "/training/complete-day", user.Token, map[string]string{
		"dayName": "Sunday",
	}, http.StatusOK, &rest)
	assert.True(t, rest.RestDay)
	assert.False(t, rest.WeekCompleted)
	assert.Zero(t, rest.GainedXP)
	assert.Equal(t, 70, rest.TotalXP)

	var stats struct {
		TotalWorkouts int `json:"totalWorkouts"`
		CurrentStreak int `json:"currentStreak"`
		WeeklyData    []struct {
			WeekKey string `json:"weekKey"`
			Count   int    `json:"count"`
		} `json:"weeklyData"`
		WorkoutFrequency []struct {
			DayName string `json:"dayName"`
			Count   int    `json:"count"`
		} `json:"workoutFrequency"`
	}
	s.doJSON(ctx, http.MethodGet, "/training/stats", user.Token, nil, http.StatusOK, &stats)
	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.Equal(t, 1, stats.CurrentStreak)
	require.Len(t, stats.WeeklyData, 6)
	assert.Equal(t, 3, stats.WeeklyData[5].Count)
	assert.Len(t, stats.WorkoutFrequency, 3)

	var logs []struct {
		DayName string `json:"dayName"`
	}
	s.doJSON(ctx, http.MethodGet, "/training/logs?limit=2", user.Token, nil, http.StatusOK, &logs)
	assert.Len(t, logs, 2)
	s.requireError(ctx, http.MethodGet, "/training/logs?limit=-1", user.Token, nil, http.StatusBadRequest, "validation")

	var profile struct {
		XP int `json:"xp"`
	}
	s.doJSON(ctx, http.MethodGet, "/auth/profile", user.Token, nil, http.StatusOK, &profile)
	assert.Equal(t, 70, profile.XP)

	var list []struct {
		Name     string `json:"name"`
		Unlocked bool   `json:"unlocked"`
	}
	s.doJSON(ctx, http.MethodGet, "/achievements", user.Token, nil, http.StatusOK, &list)
	unlocked := map[string]bool{}
	for _, a := range list {
		unlocked[a.Name] = a.Unlocked
	}
	assert.Equal(t, map[string]bool{
		"First Rep": true,
		"Regular":   false,
		"On Fire":   false,
		"Level Up":  false,
	}, unlocked)
}
