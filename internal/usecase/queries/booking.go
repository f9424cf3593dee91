package queries

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange    = errs.New("invalid date range")
	ErrBookingNotFound = errs.New("booking not found")
	ErrRoomNotFound    = errs.New("room not found")
)

// Read models (DTO for read side)

type BookingView struct {
	ID           uuid.UUID     `json:"bookingId"`
	Status       string        `json:"status"`
	TotalPrice   string        `json:"totalPrice"`
	CheckInDate  time.Time     `json:"checkInDate"`
	CheckOutDate time.Time     `json:"checkOutDate"`
	RoomNumber   string        `json:"roomNumber"`
	Persons      int           `json:"persons"`
	UserID       uuid.UUID     `json:"userId"`
	PromoCode    *string       `json:"promoCode,omitempty"`
	Services     []ServiceView `json:"appliedServices"`
	Guests       []GuestView   `json:"guestList"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"bookingId"`
	Status       string    `json:"status"`
	TotalPrice   string    `json:"totalPrice"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	RoomNumber   string    `json:"roomNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ServiceView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PricePerDay string `json:"pricePerDay"`
}

type GuestView struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Age            int    `json:"age"`
	DocumentNumber string `json:"numberDocument"`
}

type RoomView struct {
	Number        string `json:"number"`
	RoomType      string `json:"type"`
	Capacity      int    `json:"capacity"`
	PricePerNight string `json:"pricePerNight"`
	IsAvailable   bool   `json:"isAvailable"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForRoom(ctx context.Context, roomNumber string, from, to time.Time) ([]*BookingListItem, error)
	IsAvailable(ctx context.Context, roomNumber string, checkIn, checkOut time.Time) (bool, error)
	FreeRoomsBetween(ctx context.Context, checkIn, checkOut time.Time) ([]*RoomView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByRoom(ctx context.Context, roomNumber string, from, to time.Time) ([]*BookingListItem, error)
	CountActiveOverlapping(ctx context.Context, roomNumber string, checkIn, checkOut time.Time) (int64, bool, error)
	FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*RoomView, error)
}

// AvailabilityCache keeps FreeRoomsBetween results for the read API only.
// Admission never consults it: the authoritative check runs inside the
// transaction.
type AvailabilityCache interface {
	GetFreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*RoomView, bool)
	SetFreeRooms(ctx context.Context, checkIn, checkOut time.Time, rooms []*RoomView)
}

type bookingQueriesImpl struct {
	store  BookingReadStore
	cache  AvailabilityCache
	logger *slog.Logger
}

func NewBookingQueries(store BookingReadStore, cache AvailabilityCache, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForRoom(ctx context.Context, roomNumber string, from, to time.Time) ([]*BookingListItem, error) {
	if _, err := booking.NewStayRange(from, to); err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}
	return q.store.FindByRoom(ctx, roomNumber, from, to)
}

func (q *bookingQueriesImpl) IsAvailable(ctx context.Context, roomNumber string, checkIn, checkOut time.Time) (bool, error) {
	if _, err := booking.NewStayRange(checkIn, checkOut); err != nil {
		return false, errs.Mark(err, ErrInvalidRange)
	}
	overlapping, roomExists, err := q.store.CountActiveOverlapping(ctx, roomNumber, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	if !roomExists {
		return false, ErrRoomNotFound
	}
	return overlapping == 0, nil
}

func (q *bookingQueriesImpl) FreeRoomsBetween(ctx context.Context, checkIn, checkOut time.Time) ([]*RoomView, error) {
	if _, err := booking.NewStayRange(checkIn, checkOut); err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}

	if q.cache != nil {
		if rooms, ok := q.cache.GetFreeRooms(ctx, checkIn, checkOut); ok {
			return rooms, nil
		}
	}

	rooms, err := q.store.FreeRooms(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	if q.cache != nil {
		q.cache.SetFreeRooms(ctx, checkIn, checkOut, rooms)
	}
	return rooms, nil
}
