package room

import (
	"errors"
	"regexp"
	"time"

	"hotel-booking/internal/domain/shared/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidNumber   = errors.New("room number must contain only letters and digits")
	ErrInvalidType     = errors.New("unknown room type")
	ErrInvalidCapacity = errors.New("room capacity must be between 1 and 10")
	ErrNonPositiveRate = errors.New("price per night must be positive")
)

const (
	MinCapacity = 1
	MaxCapacity = 10
)

// Latin and Cyrillic letters plus digits, no separators.
var numberPattern = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z0-9]+$`)

// Room is read-only reference data owned by inventory management. The core
// never mutates it.
type Room struct {
	id            uuid.UUID
	number        string
	roomType      Type
	capacity      int
	pricePerNight money.Money
	available     bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewRoom(id uuid.UUID, number string, roomType Type, capacity int, pricePerNight money.Money, available bool) (*Room, error) {
	if !numberPattern.MatchString(number) {
		return nil, ErrInvalidNumber
	}
	if !roomType.IsValid() {
		return nil, ErrInvalidType
	}
	if capacity < MinCapacity || capacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	if !pricePerNight.IsPositive() {
		return nil, ErrNonPositiveRate
	}
	return &Room{
		id:            id,
		number:        number,
		roomType:      roomType,
		capacity:      capacity,
		pricePerNight: pricePerNight,
		available:     available,
	}, nil
}

func ReconstructRoom(id uuid.UUID, number string, roomType Type, capacity int, pricePerNight money.Money, available bool, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:            id,
		number:        number,
		roomType:      roomType,
		capacity:      capacity,
		pricePerNight: pricePerNight,
		available:     available,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (r *Room) Fits(persons int) bool {
	return persons >= MinCapacity && persons <= r.capacity
}

func (r *Room) ID() uuid.UUID              { return r.id }
func (r *Room) Number() string             { return r.number }
func (r *Room) RoomType() Type             { return r.roomType }
func (r *Room) Capacity() int              { return r.capacity }
func (r *Room) PricePerNight() money.Money { return r.pricePerNight }
func (r *Room) IsAvailable() bool          { return r.available }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
func (r *Room) UpdatedAt() time.Time       { return r.updatedAt }
