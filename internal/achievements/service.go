package achievements

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=achievements_test

type achievementsRepo interface {
	ListForUser(ctx context.Context, userID int64) ([]Achievement, error)
	Unlock(ctx context.Context, userID int64, achievementIDs []int64, at time.Time) ([]int64, error)
}

type Service struct {
	repo           achievementsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo achievementsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Achievement, error) {
	list, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency("achievements.listForUser", err)
	}
	if list == nil {
		list = []Achievement{}
	}
	return list, nil
}

// UnlockMet persists every achievement p now qualifies for and returns only
// the ones unlocked by this call.
func (s *Service) UnlockMet(ctx context.Context, userID int64, p Progress) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.unlockMet")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	catalog, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := make(map[int64]Achievement)
	var ids []int64
	for _, a := range Evaluate(catalog, p) {
		if a.Unlocked {
			continue
		}
		candidates[a.ID] = a
		ids = append(ids, a.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	unlockedAt := s.now()
	newIDs, err := s.repo.Unlock(ctx, userID, ids, unlockedAt)
	if err != nil {
		return nil, err
	}

	unlocked := make([]Achievement, 0, len(newIDs))
	for _, id := range newIDs {
		a, ok := candidates[id]
		if !ok {
			continue
		}
		a.Unlocked = true
		a.UnlockedAt = &unlockedAt
		unlocked = append(unlocked, a)
		log.Debugf("user %d unlocked achievement %q", userID, a.Name)
	}
	s.metricsManager.CounterAchievementsUnlocked.Add(float64(len(unlocked)))

	return unlocked, nil
}
