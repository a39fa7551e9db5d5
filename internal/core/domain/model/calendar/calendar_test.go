package calendar_test

import (
	"testing"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("should parse ISO dates", func(t *testing.T) {
		d, err := calendar.ParseDate("2024-03-10")

		require.NoError(t, err)
		assert.Equal(t, "2024-03-10", d.String())
		assert.Equal(t, time.Sunday, d.Weekday())
	})

	t.Run("should reject malformed dates as invalid values", func(t *testing.T) {
		for _, in := range []string{"", "2024-13-01", "03/10/2024", "2024-02-30"} {
			_, err := calendar.ParseDate(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestDate_Arithmetic(t *testing.T) {
	d := calendar.NewDate(2024, time.February, 28)

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(calendar.NewDate(2024, time.February, 28)))
	assert.Empty(t, calendar.Date{}.String())
}

func TestDateOf_UsesObservingLocation(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 03:30 UTC on the 11th is still the evening of the 10th in Chicago.
	instant := time.Date(2024, time.March, 11, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-11", calendar.DateOf(instant).String())
	assert.Equal(t, "2024-03-10", calendar.DateOf(instant.In(chicago)).String())
}

func TestDate_TextRoundTrip(t *testing.T) {
	var d calendar.Date
	require.NoError(t, d.UnmarshalText([]byte("2024-07-04")))

	out, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04", string(out))

	require.NoError(t, d.UnmarshalText(nil))
	assert.True(t, d.IsZero())
	require.Error(t, d.UnmarshalText([]byte("July 4th")))
}

func TestClockTime(t *testing.T) {
	t.Run("should parse HH:MM", func(t *testing.T) {
		c, err := calendar.ParseClockTime("15:00")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, 15, c.Hour())
		assert.Equal(t, 0, c.Minute())
		assert.Equal(t, "15:00", c.String())
	})

	t.Run("should reject malformed or out of range values", func(t *testing.T) {
		_, err := calendar.ParseClockTime("3pm")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = calendar.NewClockTime(24, 60)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "is hour")
		assert.Contains(t, err.Error(), "is minute")
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		require.ErrorIs(t, calendar.ClockTime{}.Validate(), calendar.ErrClockTimeIsNotConstructed)
	})

	t.Run("IsReachedBy compares the local wall clock", func(t *testing.T) {
		cutoff := calendar.MustClockTime("15:00")
		day := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

		assert.False(t, cutoff.IsReachedBy(day.Add(14*time.Hour+59*time.Minute)))
		assert.True(t, cutoff.IsReachedBy(day.Add(15*time.Hour)))
		assert.True(t, cutoff.IsReachedBy(day.Add(16*time.Hour)))
	})
}

func TestWeekdaySet(t *testing.T) {
	t.Run("should build from weekday numbers", func(t *testing.T) {
		s, err := calendar.NewWeekdaySet(1, 2, 3, 4, 5)

		require.NoError(t, err)
		assert.Equal(t, calendar.MondayToFriday, s)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, s.Days())
		assert.True(t, s.Contains(time.Monday))
		assert.False(t, s.Contains(time.Saturday))
	})

	t.Run("should reject numbers outside 0..6", func(t *testing.T) {
		_, err := calendar.NewWeekdaySet(0, 7, -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("empty set", func(t *testing.T) {
		assert.True(t, calendar.WeekdaySet(0).IsEmpty())
		assert.Empty(t, calendar.WeekdaySet(0).Days())
	})
}

func TestBlackoutWindow(t *testing.T) {
	start := calendar.NewDate(2024, time.December, 24)
	end := calendar.NewDate(2024, time.December, 26)

	t.Run("bounds are inclusive", func(t *testing.T) {
		w, err := calendar.NewBlackoutWindow(start, end, "Holiday shutdown")

		require.NoError(t, err)
		assert.Equal(t, "Holiday shutdown", w.Reason())
		assert.False(t, w.Contains(start.AddDays(-1)))
		assert.True(t, w.Contains(start))
		assert.True(t, w.Contains(start.AddDays(1)))
		assert.True(t, w.Contains(end))
		assert.False(t, w.Contains(end.AddDays(1)))
	})

	t.Run("single day window", func(t *testing.T) {
		w, err := calendar.NewBlackoutWindow(start, start, "Inventory count")

		require.NoError(t, err)
		assert.True(t, w.Contains(start))
	})

	t.Run("should reject inverted or missing bounds", func(t *testing.T) {
		_, err := calendar.NewBlackoutWindow(end, start, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = calendar.NewBlackoutWindow(calendar.Date{}, end, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSearch(t *testing.T) {
	monday := calendar.NewDate(2024, time.January, 15)
	weekdays := func(d calendar.Date) bool { return calendar.MondayToFriday.Contains(d.Weekday()) }

	t.Run("FirstMatch skips non-matching days", func(t *testing.T) {
		saturday := monday.AddDays(5)

		d, ok := calendar.FirstMatch(saturday, 30, weekdays)

		require.True(t, ok)
		assert.Equal(t, "2024-01-22", d.String())
	})

	t.Run("FirstMatch returns the last probed day when nothing matches", func(t *testing.T) {
		never := func(calendar.Date) bool { return false }

		d, ok := calendar.FirstMatch(monday, 30, never)

		assert.False(t, ok)
		assert.True(t, d.Equal(monday.AddDays(29)))
	})

	t.Run("Matches honors limit and horizon", func(t *testing.T) {
		got := calendar.Matches(monday, 60, 3, weekdays)
		require.Len(t, got, 3)
		assert.Equal(t, "2024-01-17", got[2].String())

		assert.Len(t, calendar.Matches(monday, 2, 3, weekdays), 2)
	})
}
