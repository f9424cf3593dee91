package booking

import (
	"errors"
	"time"

	"hotel-booking/internal/domain/hotelservice"
	"hotel-booking/internal/domain/promo"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/shared/money"
)

var ErrNonPositiveTotal = errors.New("computed total must be positive")

// PriceBreakdown keeps the audit trail of a total-price computation. All
// intermediate values are exact kopeck amounts; rounding happens once, inside
// the percent discount, at the final total.
type PriceBreakdown struct {
	Nights       int64
	RoomCost     money.Money
	ServicesCost money.Money
	Subtotal     money.Money
	Total        money.Money
}

// PriceQuoter computes the authoritative booking price. Implementations must
// be deterministic.
type PriceQuoter interface {
	Quote(rm *room.Room, stay StayRange, services hotelservice.Set, code *promo.PromoCode, today time.Time) (PriceBreakdown, error)
}

// NightlyQuoter bills the room rate per night and every applied service for
// the full stay length.
type NightlyQuoter struct{}

func NewNightlyQuoter() *NightlyQuoter {
	return &NightlyQuoter{}
}

func (q *NightlyQuoter) Quote(rm *room.Room, stay StayRange, services hotelservice.Set, code *promo.PromoCode, today time.Time) (PriceBreakdown, error) {
	nights := stay.Nights()

	roomCost := rm.PricePerNight().MulInt(nights)

	servicesCost := money.FromKopecks(0)
	for _, svc := range services.Items() {
		servicesCost = servicesCost.Add(svc.PricePerDay().MulInt(nights))
	}

	subtotal := roomCost.Add(servicesCost)

	total := subtotal
	if code != nil {
		adjusted, err := code.Apply(subtotal, today)
		if err != nil {
			return PriceBreakdown{}, err
		}
		total = adjusted
	}

	// Positive-price invariants upstream should make this unreachable, but a
	// malformed FIXED discount larger than the subtotal must not slip through.
	if !total.IsPositive() {
		return PriceBreakdown{}, ErrNonPositiveTotal
	}

	return PriceBreakdown{
		Nights:       nights,
		RoomCost:     roomCost,
		ServicesCost: servicesCost,
		Subtotal:     subtotal,
		Total:        total,
	}, nil
}
