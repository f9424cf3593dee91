package readstore

import (
	"context"
	"encoding/json"
	"time"

	"hotel-booking/internal/domain/shared/money"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

type guestRow struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Age            int    `json:"age"`
	DocumentNumber string `json:"numberDocument"`
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view       queries.BookingView
		guestsJSON []byte
		total      int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT b.id, b.status, b.total_price, b.check_in, b.check_out,
		       r.number, b.persons, b.user_id, b.promo_code, b.guests, b.created_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.id = $1`, id).Scan(
		&view.ID, &view.Status, &total, &view.CheckInDate, &view.CheckOutDate,
		&view.RoomNumber, &view.Persons, &view.UserID, &view.PromoCode,
		&guestsJSON, &view.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	view.TotalPrice = money.FromKopecks(total).String()

	var guests []guestRow
	if len(guestsJSON) > 0 {
		if err := json.Unmarshal(guestsJSON, &guests); err != nil {
			return nil, infra.WrapRepoErr("failed to decode guest list", err)
		}
	}
	view.Guests = make([]queries.GuestView, len(guests))
	for i, g := range guests {
		view.Guests[i] = queries.GuestView(g)
	}

	services, err := r.servicesForBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Services = services

	return &view, nil
}

func (r *BookingReadStore) servicesForBooking(ctx context.Context, bookingID uuid.UUID) ([]queries.ServiceView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.title, s.description, s.price_per_day
		FROM booking_services bs
		JOIN services s ON s.id = bs.service_id
		WHERE bs.booking_id = $1
		ORDER BY s.title`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking services", err)
	}
	defer rows.Close()

	services := make([]queries.ServiceView, 0)
	for rows.Next() {
		var (
			sv    queries.ServiceView
			price int64
		)
		if err := rows.Scan(&sv.Title, &sv.Description, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		sv.PricePerDay = money.FromKopecks(price).String()
		services = append(services, sv)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", rows.Err())
	}
	return services, nil
}

func (r *BookingReadStore) FindByRoom(ctx context.Context, roomNumber string, from, to time.Time) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.status, b.total_price, b.check_in, b.check_out, r.number, b.created_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE r.number = $1
		  AND b.check_in < $3
		  AND b.check_out > $2
		ORDER BY b.check_in`, roomNumber, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for room", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var (
			item  queries.BookingListItem
			total int64
		)
		if err := rows.Scan(&item.ID, &item.Status, &total, &item.CheckInDate, &item.CheckOutDate, &item.RoomNumber, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.TotalPrice = money.FromKopecks(total).String()
		items = append(items, &item)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", rows.Err())
	}
	return items, nil
}

func (r *BookingReadStore) CountActiveOverlapping(ctx context.Context, roomNumber string, checkIn, checkOut time.Time) (int64, bool, error) {
	var (
		roomID uuid.UUID
		count  int64
	)
	err := r.db.QueryRow(ctx, `SELECT id FROM rooms WHERE number = $1`, roomNumber).Scan(&roomID)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, infra.WrapRepoErr("failed to find room by number", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT count(*)
		FROM bookings
		WHERE room_id = $1
		  AND status <> 'CANCELLED'
		  AND check_in < $3
		  AND check_out > $2`, roomID, checkIn, checkOut).Scan(&count)
	if err != nil {
		return 0, false, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return count, true, nil
}

func (r *BookingReadStore) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.number, r.room_type, r.capacity, r.price_per_night, r.is_available
		FROM rooms r
		WHERE r.is_available
		  AND NOT EXISTS (
			SELECT 1
			FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status <> 'CANCELLED'
			  AND b.check_in < $2
			  AND b.check_out > $1
		  )
		ORDER BY r.number`, checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query free rooms", err)
	}
	defer rows.Close()

	result := make([]*queries.RoomView, 0)
	for rows.Next() {
		var (
			rv    queries.RoomView
			price int64
		)
		if err := rows.Scan(&rv.Number, &rv.RoomType, &rv.Capacity, &price, &rv.IsAvailable); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		rv.PricePerNight = money.FromKopecks(price).String()
		result = append(result, &rv)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", rows.Err())
	}
	return result, nil
}
