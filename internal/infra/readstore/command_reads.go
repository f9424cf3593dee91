package readstore

import (
	"context"
	"errors"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReadStore serves the command side's validation reads. Bound to a
// pool it reads committed data; bound to a transaction it reads the
// transaction's snapshot.
type CommandReadStore struct {
	db db.DBTX
}

func NewCommandReadStore(dbtx db.DBTX) *CommandReadStore {
	return &CommandReadStore{db: dbtx}
}

func (s *CommandReadStore) RoomByNumber(ctx context.Context, number string) (*shared.RoomSnapshot, error) {
	var snap shared.RoomSnapshot
	err := s.db.QueryRow(ctx, `
		SELECT id, number, room_type, capacity, price_per_night, is_available, created_at, updated_at
		FROM rooms
		WHERE number = $1`, number).Scan(
		&snap.ID, &snap.Number, &snap.RoomType, &snap.Capacity,
		&snap.PricePerNight, &snap.IsAvailable, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by number", err)
	}
	return &snap, nil
}

func (s *CommandReadStore) PromoByCode(ctx context.Context, code string) (*shared.PromoSnapshot, error) {
	var snap shared.PromoSnapshot
	err := s.db.QueryRow(ctx, `
		SELECT code, kind, amount_off, percent_off, valid_from, valid_until, is_active
		FROM promo_codes
		WHERE code = $1`, code).Scan(
		&snap.Code, &snap.Kind, &snap.AmountOff, &snap.PercentOff,
		&snap.ValidFrom, &snap.ValidUntil, &snap.IsActive,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("promo code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promo code", err)
	}
	return &snap, nil
}

func (s *CommandReadStore) ServicesByTitles(ctx context.Context, titles []string) ([]*shared.ServiceSnapshot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, price_per_day
		FROM services
		WHERE title = ANY ($1)`, titles)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find services by titles", err)
	}
	defer rows.Close()

	var result []*shared.ServiceSnapshot
	for rows.Next() {
		var snap shared.ServiceSnapshot
		if err := rows.Scan(&snap.ID, &snap.Title, &snap.Description, &snap.PricePerDay); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		result = append(result, &snap)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", rows.Err())
	}
	return result, nil
}

func (s *CommandReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := s.db.QueryRow(ctx, `
		SELECT id, room_id, user_id, check_in, check_out, persons, promo_code, status, total_price, created_at, updated_at
		FROM bookings
		WHERE id = $1`, id).Scan(
		&snap.ID, &snap.RoomID, &snap.UserID, &snap.CheckIn, &snap.CheckOut,
		&snap.Persons, &snap.PromoCode, &snap.Status, &snap.Total,
		&snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &snap, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
