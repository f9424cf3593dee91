package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/hotelservice"
	"hotel-booking/internal/domain/promo"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/shared/money"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest          = errs.New("invalid booking request")
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomUnavailable         = errs.New("room is unavailable")
	ErrDateConflict            = errs.New("room is occupied for the requested dates")
	ErrServiceNotFound         = errs.New("service not found")
	ErrPromoNotFound           = errs.New("promo code not found")
	ErrPromoExpired            = errs.New("promo code has expired")
	ErrPromoNotYetValid        = errs.New("promo code is not yet valid")
	ErrPromoInactive           = errs.New("promo code is inactive")
	ErrPromoInvalidValue       = errs.New("promo code carries an invalid discount value")
	ErrNonPositiveTotal        = errs.New("computed total is not positive")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrIllegalTransition       = errs.New("illegal booking status transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type GuestInput struct {
	Name           string
	Surname        string
	Age            int
	DocumentNumber string
}

type SubmitBookingRequest struct {
	RoomNumber    string
	UserID        uuid.UUID
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Persons       int
	Guests        []GuestInput
	ServiceTitles []string
	PromoCode     *string
}

type BookingCommands interface {
	// Submit admits a booking request: availability is checked and the booking
	// persisted atomically, so a rejection leaves no trace.
	Submit(ctx context.Context, req SubmitBookingRequest) (*queries.BookingView, error)
	Confirm(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	logger         *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		factory:        factory,
		bookingQueries: bookingQueries,
		clock:          clk,
		logger:         logger,
	}
}

func (c *bookingCommandsImpl) Submit(ctx context.Context, req SubmitBookingRequest) (*queries.BookingView, error) {
	stay, guests, err := c.validateRequest(req)
	if err != nil {
		return nil, err
	}

	reads := c.uow.CommandReads()

	roomEntity, err := c.resolveRoom(ctx, reads, req.RoomNumber)
	if err != nil {
		return nil, err
	}

	services, err := c.resolveServices(ctx, reads, req.ServiceTitles)
	if err != nil {
		return nil, err
	}

	code, err := c.resolvePromo(ctx, reads, req.PromoCode)
	if err != nil {
		return nil, err
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Per-room critical section: the lock serializes concurrent admissions
		// so the overlap check and the insert are atomic per room.
		if lockErr := tx.Bookings().LockRoom(ctx, roomEntity.ID()); lockErr != nil {
			return errs.Mark(lockErr, ErrDatabaseOperationFailed)
		}

		occupied, overlapErr := tx.Bookings().HasActiveOverlap(ctx, roomEntity.ID(), stay.CheckIn(), stay.CheckOut())
		if overlapErr != nil {
			return errs.Mark(overlapErr, ErrDatabaseOperationFailed)
		}
		if occupied {
			return ErrDateConflict
		}

		entity, breakdown, buildErr := c.factory.CreateBooking(roomEntity, req.UserID, stay, req.Persons, guests, services, code)
		if buildErr != nil {
			return c.mapDomainError(buildErr)
		}

		id, createErr := tx.Bookings().Create(ctx, entity)
		if createErr != nil {
			if infra.IsKind(createErr, infra.KindConflict) {
				// The exclusion constraint converted a race into a rejection.
				return ErrDateConflict
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		bookingID = id

		c.logger.Info("booking request admitted",
			"booking_id", id,
			"room", req.RoomNumber,
			"nights", breakdown.Nights,
			"services", services.Titles(),
			"total", breakdown.Total.String())

		return c.enqueueNotification(ctx, tx, id, "booking_requested")
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, id, booking.StatusConfirmed, "booking_confirmed")
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, id, booking.StatusCancelled, "booking_cancelled")
}

func (c *bookingCommandsImpl) transition(ctx context.Context, id uuid.UUID, target booking.Status, topic string) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, readErr := tx.Reads().BookingByID(ctx, id)
		if readErr != nil {
			if infra.IsKind(readErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(readErr, ErrDatabaseOperationFailed)
		}

		current := booking.Status(snap.Status)
		if current == target {
			// Idempotent re-application: re-cancelling a CANCELLED booking is a
			// no-op success.
			return nil
		}

		entity := reconstructForTransition(snap)
		if trErr := entity.TransitionTo(target, c.clock.Now()); trErr != nil {
			c.logger.Error("rejected illegal booking transition",
				"booking_id", id.String(),
				"from", snap.Status,
				"to", target.String())
			return errs.Mark(trErr, ErrIllegalTransition)
		}

		if updErr := tx.Bookings().UpdateStatus(ctx, id, entity.Status(), c.clock.Now()); updErr != nil {
			return errs.Mark(updErr, ErrDatabaseOperationFailed)
		}

		return c.enqueueNotification(ctx, tx, id, topic)
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) validateRequest(req SubmitBookingRequest) (booking.StayRange, []booking.Guest, error) {
	stay, err := booking.NewStayRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return booking.StayRange{}, nil, errs.Mark(err, ErrInvalidRequest)
	}

	guests := make([]booking.Guest, 0, len(req.Guests))
	for _, g := range req.Guests {
		guest, gErr := booking.NewGuest(g.Name, g.Surname, g.Age, g.DocumentNumber)
		if gErr != nil {
			return booking.StayRange{}, nil, errs.Mark(gErr, ErrInvalidRequest)
		}
		guests = append(guests, guest)
	}
	return stay, guests, nil
}

func (c *bookingCommandsImpl) resolveRoom(ctx context.Context, reads shared.CommandReads, number string) (*room.Room, error) {
	snap, err := reads.RoomByNumber(ctx, number)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity := room.ReconstructRoom(
		snap.ID,
		snap.Number,
		room.Type(snap.RoomType),
		snap.Capacity,
		money.FromKopecks(snap.PricePerNight),
		snap.IsAvailable,
		snap.CreatedAt,
		snap.UpdatedAt,
	)
	if !entity.IsAvailable() {
		return nil, ErrRoomUnavailable
	}
	return entity, nil
}

func (c *bookingCommandsImpl) resolveServices(ctx context.Context, reads shared.CommandReads, titles []string) (hotelservice.Set, error) {
	if len(titles) == 0 {
		return hotelservice.NewSet()
	}

	snaps, err := reads.ServicesByTitles(ctx, titles)
	if err != nil {
		return hotelservice.Set{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	services := make([]*hotelservice.Service, 0, len(snaps))
	for _, snap := range snaps {
		svc, svcErr := hotelservice.NewService(snap.ID, snap.Title, snap.Description, money.FromKopecks(snap.PricePerDay))
		if svcErr != nil {
			return hotelservice.Set{}, errs.Mark(svcErr, ErrInvalidRequest)
		}
		services = append(services, svc)
	}

	set, err := hotelservice.NewSet(services...)
	if err != nil {
		return hotelservice.Set{}, errs.Mark(err, ErrInvalidRequest)
	}
	if coverErr := set.Covers(titles); coverErr != nil {
		return hotelservice.Set{}, errs.Mark(coverErr, ErrServiceNotFound)
	}
	return set, nil
}

func (c *bookingCommandsImpl) resolvePromo(ctx context.Context, reads shared.CommandReads, code *string) (*promo.PromoCode, error) {
	if code == nil {
		return nil, nil
	}

	snap, err := reads.PromoByCode(ctx, *code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	discount, err := buildDiscount(snap)
	if err != nil {
		return nil, errs.Mark(err, ErrPromoInvalidValue)
	}

	entity, err := promo.NewPromoCode(snap.Code, discount, snap.ValidFrom, snap.ValidUntil, snap.IsActive)
	if err != nil {
		return nil, errs.Mark(err, ErrPromoInvalidValue)
	}
	return entity, nil
}

func buildDiscount(snap *shared.PromoSnapshot) (promo.Discount, error) {
	switch promo.Kind(snap.Kind) {
	case promo.KindFixed:
		if snap.AmountOff == nil {
			return promo.Discount{}, promo.ErrInvalidValue
		}
		return promo.NewFixedDiscount(money.FromKopecks(*snap.AmountOff))
	case promo.KindPercent:
		if snap.PercentOff == nil {
			return promo.Discount{}, promo.ErrInvalidValue
		}
		return promo.NewPercentDiscount(*snap.PercentOff)
	default:
		return promo.Discount{}, promo.ErrInvalidValue
	}
}

func (c *bookingCommandsImpl) mapDomainError(err error) error {
	switch {
	case errors.Is(err, booking.ErrCheckInInPast),
		errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, booking.ErrInvalidPersons),
		errors.Is(err, booking.ErrExceedsCapacity):
		return errs.Mark(err, ErrInvalidRequest)
	case errors.Is(err, promo.ErrExpired):
		return errs.Mark(err, ErrPromoExpired)
	case errors.Is(err, promo.ErrNotYetValid):
		return errs.Mark(err, ErrPromoNotYetValid)
	case errors.Is(err, promo.ErrInactive):
		return errs.Mark(err, ErrPromoInactive)
	case errors.Is(err, promo.ErrInvalidValue):
		return errs.Mark(err, ErrPromoInvalidValue)
	case errors.Is(err, booking.ErrNonPositiveTotal), errors.Is(err, booking.ErrNonPositivePersist):
		// Indicates corrupted upstream pricing data; surfaced, never corrected.
		c.logger.Error("booking total computed non-positive", "error", err.Error())
		return errs.Mark(err, ErrNonPositiveTotal)
	default:
		return errs.Mark(err, ErrInvalidRequest)
	}
}

func (c *bookingCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Notifications().CreateJob(ctx, "email", topic, payload, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func reconstructForTransition(snap *shared.BookingSnapshot) *booking.Booking {
	stay, err := booking.NewStayRange(snap.CheckIn, snap.CheckOut)
	if err != nil {
		// Persisted bookings always satisfy check_out > check_in.
		panic(err)
	}
	set, _ := hotelservice.NewSet()
	return booking.ReconstructBooking(
		snap.ID,
		snap.RoomID,
		snap.UserID,
		stay,
		snap.Persons,
		nil,
		set,
		snap.PromoCode,
		booking.Status(snap.Status),
		money.FromKopecks(snap.Total),
		snap.CreatedAt,
		snap.UpdatedAt,
	)
}
