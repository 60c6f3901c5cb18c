package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

// PushSubscription is a browser web push subscription as handed out by
// PushManager.subscribe.
type PushSubscription struct {
	Endpoint       string   `json:"endpoint"`
	ExpirationTime *float64 `json:"expirationTime,omitempty"`
	Keys           struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (p PushSubscription) validate(op string) error {
	endpoint, err := url.Parse(p.Endpoint)
	if err != nil || endpoint.Scheme != "https" || endpoint.Host == "" {
		return apperrors.Validation(op, "subscription endpoint must be an https url")
	}
	if p.Keys.P256dh == "" || p.Keys.Auth == "" {
		return apperrors.Validation(op, "subscription keys are required")
	}
	return nil
}

// SavePushSubscription replaces the user's push subscription. Reminder
// events carry it to the delivery worker.
func (s *Service) SavePushSubscription(ctx context.Context, userID int64, subscription PushSubscription) (err error) {
	const op = "users.savePushSubscription"
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.savePushSubscription")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := subscription.validate(op); err != nil {
		return err
	}

	raw, err := json.Marshal(subscription)
	if err != nil {
		return apperrors.Dependency(op, err)
	}

	if err := s.repo.SavePushSubscription(ctx, userID, raw); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NotFound(op, "user not found")
		}
		return apperrors.Dependency(op, err)
	}

	log.Debugf("push subscription saved for user %d", userID)
	return nil
}
