package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=notifications_test

type notificationsRepo interface {
	Create(ctx context.Context, n Notification) (int64, error)
	ListForRecipient(ctx context.Context, recipientID int64, since time.Time, limit int) ([]Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) (int64, error)
}

type Service struct {
	repo  notificationsRepo
	cache *gocache.Cache
	now   func() time.Time
}

// NewService caches each user's list in cache until it changes or expires.
func NewService(repo notificationsRepo, cache *gocache.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int64) (_ []Notification, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.notifications.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	key := cacheKey(userID)
	if cached, found := s.cache.Get(key); found {
		if list, ok := cached.([]Notification); ok {
			return list, nil
		}
	}

	list, err := s.repo.ListForRecipient(ctx, userID, s.now().Add(-Retention), ListLimit)
	if err != nil {
		return nil, apperrors.Dependency("notifications.list", err)
	}
	if list == nil {
		list = []Notification{}
	}
	s.cache.SetDefault(key, list)

	return list, nil
}

// MarkAllRead returns how many notifications changed.
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.notifications.markAllRead")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperrors.Dependency("notifications.markAllRead", err)
	}
	s.cache.Delete(cacheKey(userID))

	return updated, nil
}

// Notify stores a notification for the owner of the post. Acting on your own
// post notifies nobody.
func (s *Service) Notify(ctx context.Context, event Event) (err error) {
	const op = "notifications.notify"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.notifications.notify")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if event.RecipientID == event.SenderID {
		return nil
	}
	switch event.Type {
	case TypeLike:
		event.CommentText = ""
	case TypeComment:
		event.CommentText = pkg.TruncateRunes(event.CommentText, maxPreviewLength)
	default:
		return apperrors.Validation(op, fmt.Sprintf("unknown notification type %q", event.Type))
	}

	id, err := s.repo.Create(ctx, Notification{
		RecipientID: event.RecipientID,
		Sender:      Sender{ID: event.SenderID},
		PostID:      event.PostID,
		Type:        event.Type,
		CommentText: event.CommentText,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return apperrors.Dependency(op, err)
	}
	s.cache.Delete(cacheKey(event.RecipientID))

	log.Debugf("notification %d (%s) for user %d from user %d", id, event.Type, event.RecipientID, event.SenderID)
	return nil
}

func cacheKey(userID int64) string {
	return "notifications||" + strconv.FormatInt(userID, 10)
}
