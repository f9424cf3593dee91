package repository

import (
	"context"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
)

// CatalogRepository upserts rooms and services pulled from the peer hotel
// service. The peer stays the source of truth for the catalog; local rows
// only mirror it so admission can join against them.
type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx}
}

func (r *CatalogRepository) UpsertRoom(ctx context.Context, number, roomType string, capacity int, pricePerNight int64, isAvailable bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rooms (number, room_type, capacity, price_per_night, is_available)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (number) DO UPDATE SET
			room_type       = EXCLUDED.room_type,
			capacity        = EXCLUDED.capacity,
			price_per_night = EXCLUDED.price_per_night,
			is_available    = EXCLUDED.is_available,
			updated_at      = now()
	`, number, roomType, capacity, pricePerNight, isAvailable)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert room", err)
	}
	return nil
}

func (r *CatalogRepository) UpsertService(ctx context.Context, title, description string, pricePerDay int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO services (title, description, price_per_day)
		VALUES ($1, $2, $3)
		ON CONFLICT (title) DO UPDATE SET
			description   = EXCLUDED.description,
			price_per_day = EXCLUDED.price_per_day,
			updated_at    = now()
	`, title, description, pricePerDay)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert service", err)
	}
	return nil
}
