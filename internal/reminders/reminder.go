package reminders

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/gymrats/internal/apperrors"
)

type Type string

const (
	TypeWater  Type = "water"
	TypeMeal   Type = "meal"
	TypeCustom Type = "custom"
)

const (
	maxMessageLength = 100
	// ClockLayout is the 24h wall clock format reminders fire at.
	ClockLayout = "15:04"
)

type Reminder struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Days      []string  `json:"days"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	// PushSubscription is filled only for due reminders.
	PushSubscription json.RawMessage `json:"-"`
}

// Input carries the user editable reminder fields.
type Input struct {
	Type     Type     `json:"type"`
	Message  string   `json:"message"`
	Time     string   `json:"time"`
	Days     []string `json:"days"`
	IsActive *bool    `json:"isActive"`
}

// normalize validates in and returns it with trimmed message and
// canonical weekday names, deduplicated in week order.
func (in Input) normalize(op string) (Input, error) {
	switch in.Type {
	case TypeWater, TypeMeal, TypeCustom:
	default:
		return in, apperrors.Validation(op, "type must be one of water, meal, custom")
	}

	in.Message = strings.TrimSpace(in.Message)
	if n := utf8.RuneCountInString(in.Message); n == 0 || n > maxMessageLength {
		return in, apperrors.Validation(op, fmt.Sprintf("message must be 1 to %d characters", maxMessageLength))
	}

	if !validClock(in.Time) {
		return in, apperrors.Validation(op, "time must be HH:MM (24h)")
	}

	if len(in.Days) == 0 {
		return in, apperrors.Validation(op, "at least one day is required")
	}
	selected := make(map[time.Weekday]bool, len(in.Days))
	for _, d := range in.Days {
		wd, ok := ParseWeekday(d)
		if !ok {
			return in, apperrors.Validation(op, fmt.Sprintf("invalid day: %q", d))
		}
		selected[wd] = true
	}
	days := make([]string, 0, len(selected))
	for _, wd := range weekOrder {
		if selected[wd] {
			days = append(days, wd.String())
		}
	}
	in.Days = days

	return in, nil
}

var weekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ParseWeekday matches an English weekday name, ignoring case.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for _, wd := range weekOrder {
		if strings.EqualFold(wd.String(), name) {
			return wd, true
		}
	}
	return 0, false
}

func validClock(clock string) bool {
	if len(clock) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, clock)
	return err == nil
}
