package calendar

import (
	"errors"
	"time"
)

var ErrDateOverflow = errors.New("date arithmetic overflow")

// DaysUntilNextBirthday reports how many days remain from today until the
// next anniversary of birthday. It returns 0 when the anniversary is today.
//
// A February 29 birthday lands on March 1 in years without that day.
// today is always passed in so results never depend on the wall clock.
func DaysUntilNextBirthday(today, birthday Date) (int, error) {
	todayOrdinal := today.YearDay()
	thisYear := anniversary(birthday, today.Year())
	birthdayOrdinal := thisYear.YearDay()

	if birthdayOrdinal == todayOrdinal {
		return 0, nil
	}

	// still ahead this year; both ordinals come from the same year length
	if birthdayOrdinal > todayOrdinal {
		return birthdayOrdinal - todayOrdinal, nil
	}

	next := anniversary(birthday, today.Year()+1)

	// a year apart at most; anything else means the arithmetic went wrong
	days := daysBetween(today, next)
	if days <= 0 || days > 366 {
		return 0, ErrDateOverflow
	}

	return int(days), nil
}

// anniversary resolves birthday's month and day inside year. A day missing
// from that year rolls forward to the first existing day after it.
func anniversary(birthday Date, year int) Date {
	return Date{t: time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)}
}
