package booking

import (
	"hotel-booking/internal/domain/hotelservice"
	"hotel-booking/internal/domain/promo"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory assembles a fully-validated booking in the REQUEST state. It holds
// the injected clock so that entities and the quoter stay pure.
type Factory struct {
	clock  clock.Clock
	quoter PriceQuoter
}

func NewFactory(clk clock.Clock, quoter PriceQuoter) *Factory {
	return &Factory{
		clock:  clk,
		quoter: quoter,
	}
}

// CreateBooking re-checks the admission invariants the input boundary should
// already have enforced, prices the stay and returns the booking together
// with its price breakdown. It performs no I/O.
func (f *Factory) CreateBooking(
	rm *room.Room,
	userID uuid.UUID,
	stay StayRange,
	persons int,
	guests []Guest,
	services hotelservice.Set,
	code *promo.PromoCode,
) (*Booking, PriceBreakdown, error) {
	today := clock.Today(f.clock)

	if err := stay.ValidateNotPast(today); err != nil {
		return nil, PriceBreakdown{}, err
	}
	if persons < room.MinCapacity || persons > room.MaxCapacity {
		return nil, PriceBreakdown{}, ErrInvalidPersons
	}
	if !rm.Fits(persons) {
		return nil, PriceBreakdown{}, ErrExceedsCapacity
	}

	breakdown, err := f.quoter.Quote(rm, stay, services, code, today)
	if err != nil {
		return nil, PriceBreakdown{}, err
	}

	var codeRef *string
	if code != nil {
		c := code.Code()
		codeRef = &c
	}

	b, err := newBooking(rm.ID(), userID, stay, persons, guests, services, codeRef, breakdown.Total, today)
	if err != nil {
		return nil, PriceBreakdown{}, err
	}
	return b, breakdown, nil
}
