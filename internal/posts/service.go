package posts

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/notifications"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=posts_test

type postsRepo interface {
	Create(ctx context.Context, post Post) (*Post, error)
	Feed(ctx context.Context, since time.Time, beforeID int64, limit int) ([]Post, error)
	Owner(ctx context.Context, postID int64, since time.Time) (int64, error)
	Like(ctx context.Context, postID, userID int64, at time.Time) (bool, error)
	Unlike(ctx context.Context, postID, userID int64) error
	AddComment(ctx context.Context, comment Comment) (*Comment, error)
}

type notifier interface {
	Notify(ctx context.Context, event notifications.Event) error
}

type Service struct {
	repo           postsRepo
	notifier       notifier
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo postsRepo, notifier notifier, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		notifier:       notifier,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, text string) (_ *Post, err error) {
	const op = "posts.create"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posts.create")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	clean, err := sanitizePostText(op, text)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, Post{
		Author:    Author{ID: userID},
		Text:      clean,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}
	s.metricsManager.CounterSocialActions.WithLabelValues("post").Inc()

	return post, nil
}

// Feed returns recent posts, newest first. A zero limit means DefaultFeedLimit
// and larger limits are capped at MaxFeedLimit.
func (s *Service) Feed(ctx context.Context, beforeID int64, limit int) (_ []Post, err error) {
	const op = "posts.feed"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posts.feed")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	switch {
	case limit < 0:
		return nil, apperrors.Validation(op, "limit must not be negative")
	case limit == 0:
		limit = DefaultFeedLimit
	case limit > MaxFeedLimit:
		limit = MaxFeedLimit
	}
	if beforeID < 0 {
		return nil, apperrors.Validation(op, "before must not be negative")
	}

	feed, err := s.repo.Feed(ctx, s.now().Add(-Retention), beforeID, limit)
	if err != nil {
		return nil, apperrors.Dependency(op, err)
	}
	if feed == nil {
		feed = []Post{}
	}

	return feed, nil
}

// Like is idempotent. Only the first like notifies the author.
func (s *Service) Like(ctx context.Context, userID, postID int64) (err error) {
	const op = "posts.like"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posts.like")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	ownerID, err := s.owner(ctx, op, postID)
	if err != nil {
		return err
	}

	inserted, err := s.repo.Like(ctx, postID, userID, s.now())
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return apperrors.NotFound(op, "post not found")
		}
		return apperrors.Dependency(op, err)
	}
	if !inserted {
		return nil
	}
	s.metricsManager.CounterSocialActions.WithLabelValues("like").Inc()

	s.notify(ctx, notifications.Event{
		RecipientID: ownerID,
		SenderID:    userID,
		PostID:      postID,
		Type:        notifications.TypeLike,
	})
	return nil
}

// Unlike removes the user's like. Unliking a post that was never liked is not an error.
func (s *Service) Unlike(ctx context.Context, userID, postID int64) (err error) {
	const op = "posts.unlike"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posts.unlike")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if _, err := s.owner(ctx, op, postID); err != nil {
		return err
	}
	if err := s.repo.Unlike(ctx, postID, userID); err != nil {
		return apperrors.Dependency(op, err)
	}
	return nil
}

func (s *Service) Comment(ctx context.Context, userID, postID int64, text string) (_ *Comment, err error) {
	const op = "posts.comment"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.posts.comment")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	clean, err := sanitizeCommentText(op, text)
	if err != nil {
		return nil, err
	}
	ownerID, err := s.owner(ctx, op, postID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.AddComment(ctx, Comment{
		PostID:    postID,
		Author:    Author{ID: userID},
		Text:      clean,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperrors.NotFound(op, "post not found")
		}
		return nil, apperrors.Dependency(op, err)
	}
	s.metricsManager.CounterSocialActions.WithLabelValues("comment").Inc()

	s.notify(ctx, notifications.Event{
		RecipientID: ownerID,
		SenderID:    userID,
		PostID:      postID,
		Type:        notifications.TypeComment,
		CommentText: comment.Text,
	})
	return comment, nil
}

func (s *Service) owner(ctx context.Context, op string, postID int64) (int64, error) {
	ownerID, err := s.repo.Owner(ctx, postID, s.now().Add(-Retention))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return 0, apperrors.NotFound(op, "post not found")
		}
		return 0, apperrors.Dependency(op, err)
	}
	return ownerID, nil
}

// notify never fails the action that triggered it.
func (s *Service) notify(ctx context.Context, event notifications.Event) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		log.Errorf("notify user %d of %s on post %d: %s", event.RecipientID, event.Type, event.PostID, err)
	}
}
