package response

import (
	"time"

	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID         `json:"bookingId"`
	Status       string            `json:"status"`
	TotalPrice   string            `json:"totalPrice"`
	CheckInDate  string            `json:"checkInDate"`
	CheckOutDate string            `json:"checkOutDate"`
	RoomNumber   string            `json:"roomNumber"`
	Persons      int               `json:"persons"`
	UserID       uuid.UUID         `json:"userId"`
	PromoCode    *string           `json:"promoCode,omitempty"`
	Services     []ServiceResponse `json:"appliedServices"`
	Guests       []GuestResponse   `json:"guestList"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"bookingId"`
	Status       string    `json:"status"`
	TotalPrice   string    `json:"totalPrice"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	RoomNumber   string    `json:"roomNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ServiceResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PricePerDay string `json:"pricePerDay"`
}

type GuestResponse struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Age            int    `json:"age"`
	DocumentNumber string `json:"numberDocument"`
}

type RoomResponse struct {
	Number        string `json:"number"`
	RoomType      string `json:"type"`
	Capacity      int    `json:"capacity"`
	PricePerNight string `json:"pricePerNight"`
	IsAvailable   bool   `json:"isAvailable"`
}

type AvailabilityResponse struct {
	RoomNumber string `json:"roomNumber"`
	CheckIn    string `json:"checkInDate"`
	CheckOut   string `json:"checkOutDate"`
	Available  bool   `json:"available"`
}

const dateLayout = "2006-01-02"

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	services := make([]ServiceResponse, len(rm.Services))
	for i, s := range rm.Services {
		services[i] = ServiceResponse(s)
	}
	guests := make([]GuestResponse, len(rm.Guests))
	for i, g := range rm.Guests {
		guests[i] = GuestResponse(g)
	}

	return &BookingResponse{
		ID:           rm.ID,
		Status:       rm.Status,
		TotalPrice:   rm.TotalPrice,
		CheckInDate:  rm.CheckInDate.Format(dateLayout),
		CheckOutDate: rm.CheckOutDate.Format(dateLayout),
		RoomNumber:   rm.RoomNumber,
		Persons:      rm.Persons,
		UserID:       rm.UserID,
		PromoCode:    rm.PromoCode,
		Services:     services,
		Guests:       guests,
		CreatedAt:    rm.CreatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:           rm.ID,
		Status:       rm.Status,
		TotalPrice:   rm.TotalPrice,
		CheckInDate:  rm.CheckInDate.Format(dateLayout),
		CheckOutDate: rm.CheckOutDate.Format(dateLayout),
		RoomNumber:   rm.RoomNumber,
		CreatedAt:    rm.CreatedAt,
	}
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	out := RoomResponse(*rm)
	return &out
}
