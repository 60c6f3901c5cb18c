package reminders

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reminders_test

type remindersRepo interface {
	Create(ctx context.Context, reminder Reminder) (int64, error)
	Update(ctx context.Context, reminder Reminder) (*Reminder, error)
	Delete(ctx context.Context, userID, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]Reminder, error)
}

type Service struct {
	repo remindersRepo
	now  func() time.Time
}

func NewService(repo remindersRepo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int64) (_ []Reminder, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reminders.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	list, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency("reminders.list", err)
	}
	if list == nil {
		list = []Reminder{}
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, userID int64, in Input) (_ *Reminder, err error) {
	const op = "reminders.create"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reminders.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	in, err = in.normalize(op)
	if err != nil {
		return nil, err
	}

	reminder := Reminder{
		UserID:    userID,
		Type:      in.Type,
		Message:   in.Message,
		Time:      in.Time,
		Days:      in.Days,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: s.now(),
	}
	reminder.ID, err = s.repo.Create(ctx, reminder)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}

	log.Debugf("reminder %d created for user %d at %s", reminder.ID, userID, reminder.Time)
	return &reminder, nil
}

// Update replaces a reminder's fields. Reminders of other users are reported as not found.
func (s *Service) Update(ctx context.Context, userID, id int64, in Input) (_ *Reminder, err error) {
	const op = "reminders.update"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reminders.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	in, err = in.normalize(op)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, Reminder{
		ID:       id,
		UserID:   userID,
		Type:     in.Type,
		Message:  in.Message,
		Time:     in.Time,
		Days:     in.Days,
		IsActive: in.IsActive == nil || *in.IsActive,
	})
	if err != nil {
		if errors.Is(err, ErrReminderNotFound) {
			return nil, apperrors.NotFound(op, "reminder not found")
		}
		return nil, apperrors.Dependency(op, err)
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) (err error) {
	const op = "reminders.delete"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reminders.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err = s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrReminderNotFound) {
			return apperrors.NotFound(op, "reminder not found")
		}
		return apperrors.Dependency(op, err)
	}

	return nil
}
