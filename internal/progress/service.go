package progress

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrats/internal/achievements"
	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/calendar"
	"github.com/2beens/gymrats/internal/levels"
	"github.com/2beens/gymrats/internal/messaging"
	"github.com/2beens/gymrats/internal/plans"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=progress_test

const (
	statsWeeks      = 6
	DefaultLogLimit = 50
	MaxLogLimit     = 200
)

type completionStore interface {
	RecordCompletion(ctx context.Context, c Completion, week WeekWindow, decide AwardFunc) (*RecordResult, error)
	CountCompletions(ctx context.Context, userID int64) (int, error)
	CompletionDates(ctx context.Context, userID int64) ([]string, error)
	DateCounts(ctx context.Context, userID int64, from string) ([]DateCount, error)
	DayFrequency(ctx context.Context, userID int64) ([]DayCount, error)
	ListCompletions(ctx context.Context, userID int64, limit int) ([]Completion, error)
}

type trainingPlans interface {
	ActiveTraining(ctx context.Context, userID int64) (*plans.TrainingPlan, error)
}

type statsCache interface {
	Get(key string, dst any) bool
	Set(key string, v any)
	Delete(key string)
}

type achievementUnlocker interface {
	UnlockMet(ctx context.Context, userID int64, p achievements.Progress) ([]achievements.Achievement, error)
}

type eventPublisher interface {
	PublishDayCompleted(ctx context.Context, event messaging.DayCompleted) error
}

type ServiceParams struct {
	Store          completionStore
	Plans          trainingPlans
	StatsCache     statsCache
	Achievements   achievementUnlocker
	Publisher      eventPublisher
	Levels         *levels.Table
	Calendar       *calendar.Calendar
	MetricsManager *metrics.Manager
}

type Service struct {
	store          completionStore
	plans          trainingPlans
	statsCache     statsCache
	achievements   achievementUnlocker
	publisher      eventPublisher
	levels         *levels.Table
	cal            *calendar.Calendar
	metricsManager *metrics.Manager
}

func NewService(params ServiceParams) *Service {
	return &Service{
		store:          params.Store,
		plans:          params.Plans,
		statsCache:     params.StatsCache,
		achievements:   params.Achievements,
		publisher:      params.Publisher,
		levels:         params.Levels,
		cal:            params.Calendar,
		metricsManager: params.MetricsManager,
	}
}

// MarkDayComplete records that the user finished a day of the active training
// plan and awards the daily and weekly xp that follows from it.
func (s *Service) MarkDayComplete(ctx context.Context, userID int64, dayName string, now time.Time) (_ *CompletionResult, err error) {
	const op = "progress.markDayComplete"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.markDayComplete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	dayName = strings.TrimSpace(dayName)
	if dayName == "" {
		return nil, apperrors.Validation(op, "day name is required")
	}
	span.SetAttributes(attribute.String("day_name", dayName))

	plan, err := s.plans.ActiveTraining(ctx, userID)
	if err != nil {
		return nil, err
	}

	day, ok := plan.Day(dayName)
	if !ok {
		return nil, apperrors.Validation(op, fmt.Sprintf("day %q is not part of the active training plan", dayName))
	}

	dailyXP := DailyXP
	if day.IsRestDay() {
		dailyXP = 0
	}
	scheduled := ScheduledDays(plan)

	var transition WeeklyResult
	record, err := s.store.RecordCompletion(ctx,
		Completion{
			UserID:      userID,
			PlanID:      plan.ID,
			DayName:     day.DayName,
			CompletedAt: now,
			CompletedOn: s.cal.DateKey(now),
		},
		WeekWindow{
			From: s.cal.DateKey(s.cal.StartOfWeek(now)),
			To:   s.cal.DateKey(s.cal.EndOfWeek(now)),
		},
		func(before, after []string) Award {
			transition = EvaluateTransition(scheduled, before, after)
			return Award{
				DailyXP: dailyXP,
				BonusXP: transition.Bonus,
			}
		},
	)
	if err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			s.metricsManager.CounterCompletionConflicts.Inc()
			return nil, apperrors.Conflict(op, fmt.Sprintf("day %q was already completed today", day.DayName))
		}
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.NotFound(op, "user not found")
		}
		return nil, apperrors.Dependency(op, err)
	}

	s.metricsManager.CounterCompletedDays.WithLabelValues(strconv.FormatBool(day.IsRestDay())).Inc()
	s.metricsManager.CounterXPAwarded.Add(float64(record.Award.Total()))
	weekCompleted := record.Award.BonusXP > 0
	if weekCompleted {
		s.metricsManager.CounterWeeklyBonuses.Inc()
	}

	levelInfo, err := s.levels.Resolve(record.TotalXP)
	if err != nil {
		return nil, apperrors.Dependency(op, fmt.Errorf("resolve level for xp %d: %w", record.TotalXP, err))
	}

	result := &CompletionResult{
		Message:              fmt.Sprintf("workout %q completed!", day.DayName),
		AllDone:              !day.IsRestDay(),
		RestDay:              day.IsRestDay(),
		WeekCompleted:        weekCompleted,
		DailyXP:              record.Award.DailyXP,
		BonusXP:              record.Award.BonusXP,
		GainedXP:             record.Award.Total(),
		TotalXP:              record.TotalXP,
		Level:                levelInfo,
		UnlockedAchievements: []achievements.Achievement{},
	}
	if weekCompleted {
		result.Message = "week completed successfully!"
	}

	s.statsCache.Delete(statsCacheKey(userID))
	if unlocked := s.unlockAchievements(ctx, userID, levelInfo.Level, now); len(unlocked) > 0 {
		result.UnlockedAchievements = unlocked
	}

	if err := s.publisher.PublishDayCompleted(ctx, messaging.DayCompleted{
		UserID:        userID,
		PlanID:        plan.ID,
		DayName:       day.DayName,
		CompletedOn:   s.cal.DateKey(now),
		GainedXP:      result.GainedXP,
		TotalXP:       result.TotalXP,
		WeekCompleted: weekCompleted,
	}); err != nil {
		log.Errorf("%s: publish day completed for user %d: %s", op, userID, err)
	}

	log.Debugf(
		"user %d completed %q (plan %d): +%d xp, bonus %d, week %v",
		userID, day.DayName, plan.ID, result.GainedXP, result.BonusXP, transition.Complete,
	)

	return result, nil
}

// unlockAchievements never fails the completion it follows.
func (s *Service) unlockAchievements(ctx context.Context, userID int64, level int, now time.Time) []achievements.Achievement {
	stats, err := s.computeStats(ctx, userID, now)
	if err != nil {
		log.Errorf("progress: compute stats for achievements of user %d: %s", userID, err)
		return nil
	}
	s.statsCache.Set(statsCacheKey(userID), stats)

	unlocked, err := s.achievements.UnlockMet(ctx, userID, achievements.Progress{
		TotalWorkouts: stats.TotalWorkouts,
		Streak:        stats.CurrentStreak,
		Level:         level,
	})
	if err != nil {
		log.Errorf("progress: unlock achievements for user %d: %s", userID, err)
		return nil
	}
	return unlocked
}

func (s *Service) GetStats(ctx context.Context, userID int64, now time.Time) (_ *Stats, err error) {
	const op = "progress.getStats"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.getStats")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	key := statsCacheKey(userID)
	cached := &Stats{}
	if s.statsCache.Get(key, cached) {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}

	stats, err := s.computeStats(ctx, userID, now)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}
	s.statsCache.Set(key, stats)

	return stats, nil
}

func (s *Service) computeStats(ctx context.Context, userID int64, now time.Time) (*Stats, error) {
	total, err := s.store.CountCompletions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}

	dateKeys, err := s.store.CompletionDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("completion dates: %w", err)
	}
	dates := make([]time.Time, 0, len(dateKeys))
	for _, key := range dateKeys {
		date, err := s.cal.ParseDate(key)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	streak, err := CurrentStreak(s.cal, dates, now)
	if err != nil {
		return nil, fmt.Errorf("current streak: %w", err)
	}

	weekly, err := s.weeklyData(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	frequency, err := s.store.DayFrequency(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("day frequency: %w", err)
	}
	sort.SliceStable(frequency, func(i, j int) bool {
		if frequency[i].Count != frequency[j].Count {
			return frequency[i].Count > frequency[j].Count
		}
		return frequency[i].DayName < frequency[j].DayName
	})
	if frequency == nil {
		frequency = []DayCount{}
	}

	return &Stats{
		TotalWorkouts:    total,
		CurrentStreak:    streak,
		WeeklyData:       weekly,
		WorkoutFrequency: frequency,
	}, nil
}

// weeklyData buckets completions of the current and previous five weeks,
// oldest first, with empty weeks kept as zero.
func (s *Service) weeklyData(ctx context.Context, userID int64, now time.Time) ([]WeekCount, error) {
	first := s.cal.StartOfWeek(now).AddDate(0, 0, -7*(statsWeeks-1))

	weeks := make([]WeekCount, statsWeeks)
	index := make(map[string]int, statsWeeks)
	for i := range weeks {
		key := s.cal.WeekKey(first.AddDate(0, 0, 7*i))
		weeks[i] = WeekCount{WeekKey: key}
		index[key] = i
	}

	counts, err := s.store.DateCounts(ctx, userID, s.cal.DateKey(first))
	if err != nil {
		return nil, fmt.Errorf("date counts: %w", err)
	}
	for _, dc := range counts {
		date, err := s.cal.ParseDate(dc.Date)
		if err != nil {
			return nil, err
		}
		if i, ok := index[s.cal.WeekKey(date)]; ok {
			weeks[i].Count += dc.Count
		}
	}

	return weeks, nil
}

// ListLogs returns the user's completions, newest first. A zero limit means
// the default, larger ones are capped.
func (s *Service) ListLogs(ctx context.Context, userID int64, limit int) (_ []Completion, err error) {
	const op = "progress.listLogs"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.listLogs")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	switch {
	case limit < 0:
		return nil, apperrors.Validation(op, "limit must not be negative")
	case limit == 0:
		limit = DefaultLogLimit
	case limit > MaxLogLimit:
		limit = MaxLogLimit
	}

	completions, err := s.store.ListCompletions(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}
	if completions == nil {
		completions = []Completion{}
	}

	return completions, nil
}

func statsCacheKey(userID int64) string {
	return "stats||" + strconv.FormatInt(userID, 10)
}
