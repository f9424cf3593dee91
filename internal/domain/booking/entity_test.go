//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/hotelservice"
	"hotel-booking/internal/domain/shared/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reconstruct(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()
	stay := mustStay(t, date(2026, 9, 10), date(2026, 9, 13))
	services, err := hotelservice.NewSet()
	require.NoError(t, err)
	now := time.Now().UTC()
	return booking.ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(),
		stay, 2, nil, services, nil,
		status, money.Must("4950.00"), now, now,
	)
}

func TestTransitionTo(t *testing.T) {
	now := time.Now().UTC()

	t.Run("request can be confirmed", func(t *testing.T) {
		b := reconstruct(t, booking.StatusRequest)
		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("request can be cancelled", func(t *testing.T) {
		b := reconstruct(t, booking.StatusRequest)
		require.NoError(t, b.Cancel(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("confirmed can be cancelled", func(t *testing.T) {
		b := reconstruct(t, booking.StatusConfirmed)
		require.NoError(t, b.Cancel(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("confirmed cannot return to request", func(t *testing.T) {
		b := reconstruct(t, booking.StatusConfirmed)
		err := b.TransitionTo(booking.StatusRequest, now)
		assert.ErrorIs(t, err, booking.ErrIllegalTransition)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		b := reconstruct(t, booking.StatusCancelled)
		assert.ErrorIs(t, b.Confirm(now), booking.ErrIllegalTransition)
		assert.ErrorIs(t, b.TransitionTo(booking.StatusRequest, now), booking.ErrIllegalTransition)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("re-applying the current status is a no-op", func(t *testing.T) {
		b := reconstruct(t, booking.StatusCancelled)
		before := b.UpdatedAt()
		require.NoError(t, b.Cancel(now.Add(time.Hour)))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, before, b.UpdatedAt())
	})

	t.Run("updated timestamp moves on real transitions", func(t *testing.T) {
		b := reconstruct(t, booking.StatusRequest)
		later := now.Add(2 * time.Hour)
		require.NoError(t, b.Confirm(later))
		assert.Equal(t, later.UTC(), b.UpdatedAt())
	})
}

func TestOccupies(t *testing.T) {
	assert.True(t, reconstruct(t, booking.StatusRequest).Occupies())
	assert.True(t, reconstruct(t, booking.StatusConfirmed).Occupies())
	assert.False(t, reconstruct(t, booking.StatusCancelled).Occupies())
}
