package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymrats/internal/calendar"
)

var ErrDuplicateCompletionDate = errors.New("completion dates must be distinct and descending")

// CurrentStreak counts consecutive calendar days with a completion, ending
// today or yesterday. days must hold distinct dates, newest first. Dates
// after today are ignored.
func CurrentStreak(cal *calendar.Calendar, days []time.Time, today time.Time) (int, error) {
	if len(days) == 0 {
		return 0, nil
	}

	for i := 1; i < len(days); i++ {
		if cal.DaysBetween(days[i], days[i-1]) <= 0 {
			return 0, fmt.Errorf(
				"%w: %s follows %s",
				ErrDuplicateCompletionDate, cal.DateKey(days[i]), cal.DateKey(days[i-1]),
			)
		}
	}

	// dates past today come from clock skew and never extend a streak
	for len(days) > 0 && cal.DaysBetween(days[0], today) < 0 {
		days = days[1:]
	}
	if len(days) == 0 || cal.DaysBetween(days[0], today) > 1 {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if cal.DaysBetween(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}

	return streak, nil
}
