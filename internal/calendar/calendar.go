package calendar

import (
	"fmt"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"
	DateLayout      = "2006-01-02"
	WeekKeyLayout   = DateLayout
)

// Calendar does all date arithmetic in a single reference location.
// Weeks start on Monday.
type Calendar struct {
	loc *time.Location
}

func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc}
}

func Load(timezone string) (*Calendar, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %s: %w", timezone, err)
	}
	return New(loc), nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

func (c *Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// StartOfWeek returns Monday 00:00 of the week containing t. Sunday belongs
// to the week that started six days earlier.
func (c *Calendar) StartOfWeek(t time.Time) time.Time {
	local := t.In(c.loc)
	offset := (int(local.Weekday()) + 6) % 7
	y, m, d := local.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, c.loc)
}

// EndOfWeek returns the exclusive end of the week containing t.
func (c *Calendar) EndOfWeek(t time.Time) time.Time {
	return c.StartOfWeek(t).AddDate(0, 0, 7)
}

func (c *Calendar) WeekKey(t time.Time) string {
	return c.StartOfWeek(t).Format(WeekKeyLayout)
}

// DateKey is the YYYY-MM-DD calendar date of t in the reference location.
func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD date as midnight in the reference location.
func (c *Calendar) ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}

// DaysBetween returns the number of calendar days from a to b.
func (c *Calendar) DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	// UTC midnights have no DST gaps
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func (c *Calendar) Weekday(t time.Time) time.Weekday {
	return t.In(c.loc).Weekday()
}
