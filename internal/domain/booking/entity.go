package booking

import (
	"errors"
	"time"

	"hotel-booking/internal/domain/hotelservice"
	"hotel-booking/internal/domain/shared/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidPersons     = errors.New("persons count must be between 1 and 10")
	ErrExceedsCapacity    = errors.New("persons count exceeds room capacity")
	ErrIllegalTransition  = errors.New("illegal booking status transition")
	ErrNonPositivePersist = errors.New("booking total must be positive before persistence")
)

// Booking is the aggregate created by admission. It is mutated only through
// lifecycle transitions and never physically deleted; cancellation is a
// terminal status, not removal.
type Booking struct {
	id        uuid.UUID
	roomID    uuid.UUID
	userID    uuid.UUID
	stay      StayRange
	persons   int
	guests    []Guest
	services  hotelservice.Set
	promoCode *string
	status    Status
	total     money.Money
	createdAt time.Time
	updatedAt time.Time
}

func newBooking(
	roomID, userID uuid.UUID,
	stay StayRange,
	persons int,
	guests []Guest,
	services hotelservice.Set,
	promoCode *string,
	total money.Money,
	createdAt time.Time,
) (*Booking, error) {
	if !total.IsPositive() {
		return nil, ErrNonPositivePersist
	}
	return &Booking{
		id:        uuid.New(),
		roomID:    roomID,
		userID:    userID,
		stay:      stay,
		persons:   persons,
		guests:    guests,
		services:  services,
		promoCode: promoCode,
		status:    StatusRequest,
		total:     total,
		createdAt: createdAt,
		updatedAt: createdAt,
	}, nil
}

func ReconstructBooking(
	id, roomID, userID uuid.UUID,
	stay StayRange,
	persons int,
	guests []Guest,
	services hotelservice.Set,
	promoCode *string,
	status Status,
	total money.Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		stay:      stay,
		persons:   persons,
		guests:    guests,
		services:  services,
		promoCode: promoCode,
		status:    status,
		total:     total,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// TransitionTo applies a lifecycle transition. Allowed moves are
// REQUEST to CONFIRMED, REQUEST to CANCELLED and CONFIRMED to CANCELLED.
// Re-applying the current status is a no-op success so that retried external
// calls stay safe to replay.
func (b *Booking) TransitionTo(target Status, now time.Time) error {
	if target == b.status {
		return nil
	}
	switch {
	case b.status == StatusRequest && target == StatusConfirmed:
	case b.status == StatusRequest && target == StatusCancelled:
	case b.status == StatusConfirmed && target == StatusCancelled:
	default:
		return ErrIllegalTransition
	}
	b.status = target
	b.updatedAt = now.UTC()
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	return b.TransitionTo(StatusConfirmed, now)
}

func (b *Booking) Cancel(now time.Time) error {
	return b.TransitionTo(StatusCancelled, now)
}

// Occupies reports whether the booking currently blocks its room's calendar.
func (b *Booking) Occupies() bool {
	return b.status.Occupies()
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) RoomID() uuid.UUID          { return b.roomID }
func (b *Booking) UserID() uuid.UUID          { return b.userID }
func (b *Booking) Stay() StayRange            { return b.stay }
func (b *Booking) Persons() int               { return b.persons }
func (b *Booking) Guests() []Guest            { return b.guests }
func (b *Booking) Services() hotelservice.Set { return b.services }
func (b *Booking) PromoCode() *string         { return b.promoCode }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Total() money.Money         { return b.total }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
