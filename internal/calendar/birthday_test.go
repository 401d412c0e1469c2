package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocoder89/birthdays/internal/calendar"
)

func TestDaysUntilNextBirthday(t *testing.T) {
	tests := []struct {
		name     string
		today    calendar.Date
		birthday calendar.Date
		want     int
	}{
		{"birthday is today exactly", calendar.MustDate(1990, time.January, 12), calendar.MustDate(1990, time.January, 12), 0},
		{"birthday is today different year", calendar.MustDate(2023, time.January, 12), calendar.MustDate(1990, time.January, 12), 0},
		{"birthday yet to come this year", calendar.MustDate(2023, time.January, 12), calendar.MustDate(1990, time.June, 13), 152},
		{"birthday already passed this year", calendar.MustDate(2023, time.April, 23), calendar.MustDate(1990, time.February, 4), 287},
		{"leap day birthday lands on march first", calendar.MustDate(2023, time.February, 28), calendar.MustDate(1992, time.February, 29), 1},
		{"leap day birthday on a leap year", calendar.MustDate(2024, time.February, 29), calendar.MustDate(1992, time.February, 29), 0},
		{"leap day birthday celebrated on march first", calendar.MustDate(2023, time.March, 1), calendar.MustDate(1992, time.February, 29), 0},
		{"leap day birthday passed rolls into non leap year", calendar.MustDate(2024, time.March, 2), calendar.MustDate(1992, time.February, 29), 364},
		{"leap day birthday passed rolls into leap year", calendar.MustDate(2023, time.December, 31), calendar.MustDate(2000, time.February, 29), 60},
		{"same month and day in a leap year", calendar.MustDate(2024, time.March, 1), calendar.MustDate(1990, time.March, 1), 0},
		{"across the year boundary", calendar.MustDate(2023, time.December, 31), calendar.MustDate(1990, time.January, 1), 1},
		{"day after birthday", calendar.MustDate(2021, time.June, 14), calendar.MustDate(1990, time.June, 13), 364},
		{"day after birthday before a leap day", calendar.MustDate(2023, time.June, 14), calendar.MustDate(1990, time.June, 13), 365},
		{"day after birthday spanning a leap day", calendar.MustDate(2023, time.March, 2), calendar.MustDate(1990, time.March, 1), 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.DaysUntilNextBirthday(tt.today, tt.birthday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysUntilNextBirthday_SameDateIsZero(t *testing.T) {
	d := calendar.MustDate(1999, time.January, 1)
	end := calendar.MustDate(2004, time.December, 31)

	for !d.After(end) {
		got, err := calendar.DaysUntilNextBirthday(d, d)
		require.NoError(t, err)
		require.Equal(t, 0, got, "date %s", d)

		d = calendar.DateOf(d.Time().AddDate(0, 0, 1))
	}
}

func TestDaysUntilNextBirthday_LaterThisYearIsOrdinalDifference(t *testing.T) {
	today := calendar.MustDate(2023, time.March, 15)
	birthday := calendar.MustDate(2023, time.March, 16)
	end := calendar.MustDate(2023, time.December, 31)

	for !birthday.After(end) {
		got, err := calendar.DaysUntilNextBirthday(today, birthday)
		require.NoError(t, err)
		require.Equal(t, birthday.YearDay()-today.YearDay(), got, "birthday %s", birthday)

		birthday = calendar.DateOf(birthday.Time().AddDate(0, 0, 1))
	}
}

func TestDaysUntilNextBirthday_AlwaysWithinAYear(t *testing.T) {
	birthday := calendar.MustDate(1980, time.February, 29)
	today := calendar.MustDate(2021, time.January, 1)
	end := calendar.MustDate(2025, time.December, 31)

	for !today.After(end) {
		got, err := calendar.DaysUntilNextBirthday(today, birthday)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, 0)
		require.LessOrEqual(t, got, 365)

		today = calendar.DateOf(today.Time().AddDate(0, 0, 1))
	}
}
