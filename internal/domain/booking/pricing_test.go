//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/promo"
	"hotel-booking/internal/domain/shared/money"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPromo(t *testing.T, amount string, from, until time.Time) *promo.PromoCode {
	t.Helper()
	discount, err := promo.NewFixedDiscount(money.Must(amount))
	require.NoError(t, err)
	code, err := promo.NewPromoCode("MINUS1000", discount, from, until, true)
	require.NoError(t, err)
	return code
}

func percentPromo(t *testing.T, percent float64, from, until time.Time) *promo.PromoCode {
	t.Helper()
	discount, err := promo.NewPercentDiscount(percent)
	require.NoError(t, err)
	code, err := promo.NewPromoCode("SALE10", discount, from, until, true)
	require.NoError(t, err)
	return code
}

func TestNightlyQuoter(t *testing.T) {
	today := date(2026, 9, 1)
	window := [2]time.Time{today.AddDate(0, 0, -10), today.AddDate(0, 0, 10)}

	b := builder.NewBookingBuilder()
	rm := b.BuildRoom()
	stay := mustStay(t, date(2026, 9, 10), date(2026, 9, 13))
	services := b.BuildServices()
	quoter := booking.NewNightlyQuoter()

	t.Run("room and services billed per night", func(t *testing.T) {
		breakdown, err := quoter.Quote(rm, stay, services, nil, today)
		require.NoError(t, err)

		assert.Equal(t, int64(3), breakdown.Nights)
		assert.Equal(t, "4500.00", breakdown.RoomCost.String())
		assert.Equal(t, "450.00", breakdown.ServicesCost.String())
		assert.Equal(t, "4950.00", breakdown.Subtotal.String())
		assert.Equal(t, "4950.00", breakdown.Total.String())
	})

	t.Run("no services means subtotal is room cost", func(t *testing.T) {
		breakdown, err := quoter.Quote(rm, stay, b.BuildEmptyServices(), nil, today)
		require.NoError(t, err)
		assert.Equal(t, "4500.00", breakdown.Total.String())
	})

	t.Run("fixed discount subtracts from subtotal", func(t *testing.T) {
		code := fixedPromo(t, "1000.00", window[0], window[1])
		breakdown, err := quoter.Quote(rm, stay, services, code, today)
		require.NoError(t, err)
		assert.Equal(t, "4950.00", breakdown.Subtotal.String())
		assert.Equal(t, "3950.00", breakdown.Total.String())
	})

	t.Run("percent discount rounds at the total", func(t *testing.T) {
		code := percentPromo(t, 10, window[0], window[1])
		breakdown, err := quoter.Quote(rm, stay, services, code, today)
		require.NoError(t, err)
		assert.Equal(t, "4455.00", breakdown.Total.String())
	})

	t.Run("discount swallowing the subtotal is rejected", func(t *testing.T) {
		code := fixedPromo(t, "99999.00", window[0], window[1])
		_, err := quoter.Quote(rm, stay, services, code, today)
		assert.ErrorIs(t, err, booking.ErrNonPositiveTotal)
	})

	t.Run("expired promo aborts the quote", func(t *testing.T) {
		code := percentPromo(t, 10, today.AddDate(0, 0, -20), today.AddDate(0, 0, -10))
		_, err := quoter.Quote(rm, stay, services, code, today)
		assert.ErrorIs(t, err, promo.ErrExpired)
	})

	t.Run("cost is linear in nights", func(t *testing.T) {
		oneNight := mustStay(t, date(2026, 9, 10), date(2026, 9, 11))
		short, err := quoter.Quote(rm, oneNight, services, nil, today)
		require.NoError(t, err)

		long, err := quoter.Quote(rm, stay, services, nil, today)
		require.NoError(t, err)

		assert.Equal(t, short.Subtotal.MulInt(3).Kopecks(), long.Subtotal.Kopecks())
	})
}

func TestFactoryCreateBooking(t *testing.T) {
	today := date(2026, 9, 1)
	clk := clock.NewMockClock(today)
	factory := booking.NewFactory(clk, booking.NewNightlyQuoter())

	b := builder.NewBookingBuilder()
	rm := b.BuildRoom()
	stay := mustStay(t, date(2026, 9, 10), date(2026, 9, 13))
	guests := b.BuildGuests()
	services := b.BuildServices()

	t.Run("creates a priced request", func(t *testing.T) {
		created, breakdown, err := factory.CreateBooking(rm, uuid.New(), stay, 2, guests, services, nil)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, booking.StatusRequest, created.Status())
		assert.Equal(t, "4950.00", created.Total().String())
		assert.Equal(t, breakdown.Total, created.Total())
		assert.Equal(t, rm.ID(), created.RoomID())
		assert.Nil(t, created.PromoCode())
	})

	t.Run("stores the applied promo code", func(t *testing.T) {
		code := percentPromo(t, 10, today.AddDate(0, 0, -1), today.AddDate(0, 0, 30))
		created, _, err := factory.CreateBooking(rm, uuid.New(), stay, 2, guests, services, code)
		require.NoError(t, err)
		require.NotNil(t, created.PromoCode())
		assert.Equal(t, "SALE10", *created.PromoCode())
		assert.Equal(t, "4455.00", created.Total().String())
	})

	t.Run("rejects past check-in", func(t *testing.T) {
		past := mustStay(t, date(2026, 8, 20), date(2026, 8, 23))
		_, _, err := factory.CreateBooking(rm, uuid.New(), past, 2, guests, services, nil)
		assert.ErrorIs(t, err, booking.ErrCheckInInPast)
	})

	t.Run("rejects persons above room capacity", func(t *testing.T) {
		_, _, err := factory.CreateBooking(rm, uuid.New(), stay, 4, guests, services, nil)
		assert.ErrorIs(t, err, booking.ErrExceedsCapacity)
	})

	t.Run("rejects persons outside the global bounds", func(t *testing.T) {
		_, _, err := factory.CreateBooking(rm, uuid.New(), stay, 0, guests, services, nil)
		assert.ErrorIs(t, err, booking.ErrInvalidPersons)

		_, _, err = factory.CreateBooking(rm, uuid.New(), stay, 11, guests, services, nil)
		assert.ErrorIs(t, err, booking.ErrInvalidPersons)
	})
}
