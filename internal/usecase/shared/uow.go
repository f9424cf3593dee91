package shared

import (
	"context"
	"time"

	"hotel-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork scopes the admission critical section. Within runs fn inside a
// transaction retried on serialization failures; CommandReads gives
// validation reads outside any transaction.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	CommandReads() CommandReads
}

// Tx exposes repositories bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CommandReads interface {
	RoomByNumber(ctx context.Context, number string) (*RoomSnapshot, error)
	PromoByCode(ctx context.Context, code string) (*PromoSnapshot, error)
	ServicesByTitles(ctx context.Context, titles []string) ([]*ServiceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

type BookingRepository interface {
	// LockRoom serializes concurrent admissions for one room; it must be
	// called before HasActiveOverlap inside the same transaction.
	LockRoom(ctx context.Context, roomID uuid.UUID) error
	HasActiveOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, now time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// Minimal snapshots for command-side reads.

type RoomSnapshot struct {
	ID            uuid.UUID
	Number        string
	RoomType      string
	Capacity      int
	PricePerNight int64
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PromoSnapshot struct {
	Code       string
	Kind       string
	AmountOff  *int64
	PercentOff *float64
	ValidFrom  time.Time
	ValidUntil time.Time
	IsActive   bool
}

type ServiceSnapshot struct {
	ID          uuid.UUID
	Title       string
	Description string
	PricePerDay int64
}

type BookingSnapshot struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	UserID    uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Persons   int
	PromoCode *string
	Status    string
	Total     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
