package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

const (
	EventDayCompleted = "workout.day_completed"
	EventReminderDue  = "reminder.due"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=messaging_test

type messageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

type Topics struct {
	DayCompleted string
	RemindersDue string
}

// Envelope is the JSON body of every published message.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type DayCompleted struct {
	UserID        int64  `json:"userId"`
	PlanID        int64  `json:"planId"`
	DayName       string `json:"dayName"`
	CompletedOn   string `json:"completedOn"`
	GainedXP      int    `json:"gainedXp"`
	TotalXP       int    `json:"totalXp"`
	WeekCompleted bool   `json:"weekCompleted"`
}

type ReminderDue struct {
	ReminderID int64  `json:"reminderId"`
	UserID     int64  `json:"userId"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Time       string `json:"time"`
	DueAt      string `json:"dueAt"`
	// PushSubscription is the user's web push subscription, absent when
	// the user never subscribed.
	PushSubscription json.RawMessage `json:"pushSubscription,omitempty"`
}

// Publisher turns domain events into keyed broker messages. A nil writer
// makes it a no-op, used when the broker is disabled.
type Publisher struct {
	writer messageWriter
	topics Topics
	now    func() time.Time
}

func NewPublisher(writer messageWriter, topics Topics) *Publisher {
	return &Publisher{
		writer: writer,
		topics: topics,
		now:    time.Now,
	}
}

func NewNoopPublisher() *Publisher {
	return NewPublisher(nil, Topics{})
}

func (p *Publisher) PublishDayCompleted(ctx context.Context, event DayCompleted) error {
	return p.publish(ctx, p.topics.DayCompleted, EventDayCompleted, event.UserID, event)
}

func (p *Publisher) PublishReminderDue(ctx context.Context, event ReminderDue) error {
	return p.publish(ctx, p.topics.RemindersDue, EventReminderDue, event.UserID, event)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType string, userID int64, payload any) (err error) {
	if p.writer == nil {
		log.Tracef("messaging disabled, dropping %s for user %d", eventType, userID)
		return nil
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "messaging.publish."+eventType)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	envelope, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Payload:    body,
	})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	if err := p.writer.WriteMessages(ctx, topic, kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: envelope,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(eventType)},
		},
	}); err != nil {
		return fmt.Errorf("write %s to %s: %w", eventType, topic, err)
	}

	return nil
}
