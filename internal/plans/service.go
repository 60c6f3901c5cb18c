package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=plans_test

type plansRepo interface {
	SaveActive(ctx context.Context, plan StoredPlan) (int64, error)
	GetActive(ctx context.Context, userID int64, kind Kind) (*StoredPlan, error)
}

type signer interface {
	Sign(v any) (string, error)
	Verify(v any, signature string) bool
}

type SaveTrainingRequest struct {
	Level           string   `json:"level"`
	Objective       string   `json:"objective"`
	Frequency       string   `json:"frequency"`
	Equipment       string   `json:"equipment"`
	TimePerSession  string   `json:"timePerSession"`
	Days            []Day    `json:"plan"`
	Recommendations []string `json:"recommendations"`
	Signature       string   `json:"signature"`
}

type SaveNutritionRequest struct {
	UserInputs json.RawMessage `json:"userInputs"`
	Plan       json.RawMessage `json:"plan"`
	Tips       json.RawMessage `json:"tips"`
	Signature  string          `json:"signature"`
}

type Service struct {
	repo           plansRepo
	signer         signer
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo plansRepo, signer signer, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		signer:         signer,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// IssueTraining signs generated plan days so a later save can prove they were not altered.
func (s *Service) IssueTraining(days []Day) (*SignedDays, error) {
	if err := validateDays("plans.issueTraining", days); err != nil {
		return nil, err
	}
	signature, err := s.signer.Sign(days)
	if err != nil {
		return nil, fmt.Errorf("sign plan days: %w", err)
	}
	return &SignedDays{
		Days:      days,
		Signature: signature,
	}, nil
}

func (s *Service) SaveTraining(ctx context.Context, userID int64, req SaveTrainingRequest) (_ *TrainingPlan, err error) {
	const op = "plans.saveTraining"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.saveTraining")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	required := []struct{ field, value string }{
		{"level", req.Level},
		{"objective", req.Objective},
		{"frequency", req.Frequency},
		{"equipment", req.Equipment},
		{"timePerSession", req.TimePerSession},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, apperrors.Validation(op, r.field+" is required")
		}
	}
	if err := validateDays(op, req.Days); err != nil {
		return nil, err
	}
	if err := s.checkSignature(op, userID, KindTraining, req.Days, req.Signature); err != nil {
		return nil, err
	}

	plan := &TrainingPlan{
		UserID:          userID,
		Level:           req.Level,
		Objective:       req.Objective,
		Frequency:       req.Frequency,
		Equipment:       req.Equipment,
		TimePerSession:  req.TimePerSession,
		Days:            req.Days,
		Recommendations: req.Recommendations,
		Signature:       req.Signature,
		CreatedAt:       s.now(),
	}
	plan.ID, err = s.store(ctx, op, StoredPlan{
		UserID:    userID,
		Kind:      KindTraining,
		Signature: plan.Signature,
		CreatedAt: plan.CreatedAt,
	}, plan)
	if err != nil {
		return nil, err
	}

	log.Debugf("user %d saved training plan %d with %d days", userID, plan.ID, len(plan.Days))
	return plan, nil
}

func (s *Service) SaveNutrition(ctx context.Context, userID int64, req SaveNutritionRequest) (_ *NutritionPlan, err error) {
	const op = "plans.saveNutrition"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.saveNutrition")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if len(req.Plan) == 0 || string(req.Plan) == "null" {
		return nil, apperrors.Validation(op, "plan is required")
	}
	if err := s.checkSignature(op, userID, KindNutrition, req.Plan, req.Signature); err != nil {
		return nil, err
	}

	plan := &NutritionPlan{
		UserID:     userID,
		UserInputs: req.UserInputs,
		Plan:       req.Plan,
		Tips:       req.Tips,
		Signature:  req.Signature,
		CreatedAt:  s.now(),
	}
	plan.ID, err = s.store(ctx, op, StoredPlan{
		UserID:    userID,
		Kind:      KindNutrition,
		Signature: plan.Signature,
		CreatedAt: plan.CreatedAt,
	}, plan)
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *Service) ActiveTraining(ctx context.Context, userID int64) (*TrainingPlan, error) {
	plan := &TrainingPlan{}
	if err := s.loadActive(ctx, "plans.activeTraining", userID, KindTraining, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) ActiveNutrition(ctx context.Context, userID int64) (*NutritionPlan, error) {
	plan := &NutritionPlan{}
	if err := s.loadActive(ctx, "plans.activeNutrition", userID, KindNutrition, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// checkSignature never logs or returns the expected signature.
func (s *Service) checkSignature(op string, userID int64, kind Kind, content any, signature string) error {
	if signature == "" {
		return apperrors.Validation(op, "integrity check failed: signature missing")
	}
	if !s.signer.Verify(content, signature) {
		s.metricsManager.CounterIntegrityFailures.WithLabelValues(string(kind)).Inc()
		log.Warnf("%s: invalid %s plan signature from user %d", op, kind, userID)
		return apperrors.Integrity(op, "integrity check failed, the plan may have been tampered with")
	}
	return nil
}

func (s *Service) store(ctx context.Context, op string, meta StoredPlan, plan any) (int64, error) {
	content, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("%s: marshal plan: %w", op, err)
	}
	meta.Content = content

	id, err := s.repo.SaveActive(ctx, meta)
	if err != nil {
		return 0, apperrors.Dependency(op, err)
	}
	return id, nil
}

func (s *Service) loadActive(ctx context.Context, op string, userID int64, kind Kind, dst any) error {
	stored, err := s.repo.GetActive(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return apperrors.NotFound(op, fmt.Sprintf("no saved %s plan found", kind))
		}
		return apperrors.Dependency(op, err)
	}

	if err := json.Unmarshal(stored.Content, dst); err != nil {
		return apperrors.Dependency(op, fmt.Errorf("unmarshal stored plan %d: %w", stored.ID, err))
	}

	switch p := dst.(type) {
	case *TrainingPlan:
		p.ID, p.UserID, p.CreatedAt = stored.ID, stored.UserID, stored.CreatedAt
	case *NutritionPlan:
		p.ID, p.UserID, p.CreatedAt = stored.ID, stored.UserID, stored.CreatedAt
	}
	return nil
}

func validateDays(op string, days []Day) error {
	if len(days) == 0 {
		return apperrors.Validation(op, "plan has no days")
	}
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		name := strings.ToLower(strings.TrimSpace(d.DayName))
		if name == "" {
			return apperrors.Validation(op, "plan day without a name")
		}
		if seen[name] {
			return apperrors.Validation(op, fmt.Sprintf("duplicate plan day %q", d.DayName))
		}
		seen[name] = true
	}
	return nil
}
