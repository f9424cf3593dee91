//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, checkIn, checkOut time.Time) booking.StayRange {
	t.Helper()
	stay, err := booking.NewStayRange(checkIn, checkOut)
	require.NoError(t, err)
	return stay
}

func TestNewStayRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		stay, err := booking.NewStayRange(date(2026, 9, 10), date(2026, 9, 13))
		require.NoError(t, err)
		assert.Equal(t, int64(3), stay.Nights())
	})

	t.Run("check-out equal to check-in rejected", func(t *testing.T) {
		_, err := booking.NewStayRange(date(2026, 9, 10), date(2026, 9, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidRange)
	})

	t.Run("check-out before check-in rejected", func(t *testing.T) {
		_, err := booking.NewStayRange(date(2026, 9, 13), date(2026, 9, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidRange)
	})

	t.Run("time components are truncated to dates", func(t *testing.T) {
		in := time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC)
		out := time.Date(2026, 9, 11, 9, 0, 0, 0, time.UTC)
		stay, err := booking.NewStayRange(in, out)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 9, 10), stay.CheckIn())
		assert.Equal(t, date(2026, 9, 11), stay.CheckOut())
		assert.Equal(t, int64(1), stay.Nights())
	})
}

func TestStayRangeOverlaps(t *testing.T) {
	base := mustStay(t, date(2026, 9, 10), date(2026, 9, 13))

	cases := []struct {
		name  string
		other booking.StayRange
		want  bool
	}{
		{name: "identical range", other: mustStay(t, date(2026, 9, 10), date(2026, 9, 13)), want: true},
		{name: "contained range", other: mustStay(t, date(2026, 9, 11), date(2026, 9, 12)), want: true},
		{name: "overlaps start", other: mustStay(t, date(2026, 9, 8), date(2026, 9, 11)), want: true},
		{name: "overlaps end", other: mustStay(t, date(2026, 9, 12), date(2026, 9, 15)), want: true},
		{name: "surrounding range", other: mustStay(t, date(2026, 9, 8), date(2026, 9, 15)), want: true},
		{name: "single shared night", other: mustStay(t, date(2026, 9, 12), date(2026, 9, 13)), want: true},
		{name: "back to back after", other: mustStay(t, date(2026, 9, 13), date(2026, 9, 16)), want: false},
		{name: "back to back before", other: mustStay(t, date(2026, 9, 7), date(2026, 9, 10)), want: false},
		{name: "fully apart", other: mustStay(t, date(2026, 9, 20), date(2026, 9, 22)), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			// Overlap is symmetric
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestStayRangeValidateNotPast(t *testing.T) {
	today := date(2026, 9, 10)

	t.Run("starting today is allowed", func(t *testing.T) {
		stay := mustStay(t, today, today.AddDate(0, 0, 2))
		assert.NoError(t, stay.ValidateNotPast(today))
	})

	t.Run("starting in the future is allowed", func(t *testing.T) {
		stay := mustStay(t, today.AddDate(0, 0, 5), today.AddDate(0, 0, 7))
		assert.NoError(t, stay.ValidateNotPast(today))
	})

	t.Run("starting yesterday is rejected", func(t *testing.T) {
		stay := mustStay(t, today.AddDate(0, 0, -1), today.AddDate(0, 0, 2))
		assert.ErrorIs(t, stay.ValidateNotPast(today), booking.ErrCheckInInPast)
	})
}

func TestNewGuest(t *testing.T) {
	cases := []struct {
		name     string
		guest    [2]string
		age      int
		document string
		errIs    error
	}{
		{name: "valid guest", guest: [2]string{"Иван", "Иванов"}, age: 30, document: "4510123456"},
		{name: "hyphenated surname", guest: [2]string{"Анна", "Петрова-Водкина"}, age: 25, document: "123456"},
		{name: "latin letters rejected", guest: [2]string{"Ivan", "Иванов"}, age: 30, document: "123456", errIs: booking.ErrInvalidGuestRef},
		{name: "too short name", guest: [2]string{"Ян", "Иванов"}, age: 30, document: "123456", errIs: booking.ErrInvalidGuestRef},
		{name: "digits in name rejected", guest: [2]string{"Иван1", "Иванов"}, age: 30, document: "123456", errIs: booking.ErrInvalidGuestRef},
		{name: "negative age", guest: [2]string{"Иван", "Иванов"}, age: -1, document: "123456", errIs: booking.ErrInvalidAge},
		{name: "age over limit", guest: [2]string{"Иван", "Иванов"}, age: 128, document: "123456", errIs: booking.ErrInvalidAge},
		{name: "newborn allowed", guest: [2]string{"Иван", "Иванов"}, age: 0, document: "123456"},
		{name: "document too short", guest: [2]string{"Иван", "Иванов"}, age: 30, document: "12", errIs: booking.ErrInvalidDocument},
		{name: "document too long", guest: [2]string{"Иван", "Иванов"}, age: 30, document: "123456789012345678901", errIs: booking.ErrInvalidDocument},
		{name: "document with letters", guest: [2]string{"Иван", "Иванов"}, age: 30, document: "12a456", errIs: booking.ErrInvalidDocument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := booking.NewGuest(tc.guest[0], tc.guest[1], tc.age, tc.document)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.guest[0], g.Name())
			assert.Equal(t, tc.guest[1], g.Surname())
		})
	}
}
