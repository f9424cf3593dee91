package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeForeignKeyViolated = "23503"
	pgErrCodeExclusionViolation = "23P01"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// guestRecord is the persisted shape of a guest inside the bookings.guests
// jsonb column.
type guestRecord struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Age            int    `json:"age"`
	DocumentNumber string `json:"numberDocument"`
}

// LockRoom takes a row lock on the room, serializing concurrent admissions
// for it until the surrounding transaction ends.
func (r *BookingRepository) LockRoom(ctx context.Context, roomID uuid.UUID) error {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock room", err)
	}
	return nil
}

func (r *BookingRepository) HasActiveOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	var occupied bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE room_id = $1
			  AND status <> 'CANCELLED'
			  AND check_in < $3
			  AND check_out > $2
		)`, roomID, checkIn, checkOut).Scan(&occupied)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return occupied, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	guests := make([]guestRecord, 0, len(b.Guests()))
	for _, g := range b.Guests() {
		guests = append(guests, guestRecord{
			Name:           g.Name(),
			Surname:        g.Surname(),
			Age:            g.Age(),
			DocumentNumber: g.DocumentNumber(),
		})
	}
	guestsJSON, err := json.Marshal(guests)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode guest list", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO bookings (id, room_id, user_id, check_in, check_out, persons, guests, promo_code, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		b.ID(), b.RoomID(), b.UserID(),
		b.Stay().CheckIn(), b.Stay().CheckOut(),
		b.Persons(), guestsJSON, b.PromoCode(),
		b.Status().String(), b.Total().Kopecks(), b.CreatedAt(),
	)
	if err != nil {
		return uuid.Nil, wrapBookingWriteErr(err)
	}

	for _, svc := range b.Services().Items() {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO booking_services (booking_id, service_id) VALUES ($1, $2)`,
			b.ID(), svc.ID(),
		); err != nil {
			return uuid.Nil, wrapBookingWriteErr(err)
		}
	}

	return b.ID(), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status.String(), now,
	)
	if err != nil {
		return wrapBookingWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func wrapBookingWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr("booking dates conflict with an existing booking", err, infra.KindConflict)
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr("duplicate booking", err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolated:
			return infra.WrapRepoErr("booking references missing row", err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr("failed to write booking", err)
}
