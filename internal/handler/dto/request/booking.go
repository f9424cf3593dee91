package request

import (
	"strings"
	"time"

	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errs.New("invalid date format, expected YYYY-MM-DD")

type GuestPayload struct {
	Name           string `json:"name" binding:"required"`
	Surname        string `json:"surname" binding:"required"`
	Age            int    `json:"age"`
	DocumentNumber string `json:"numberDocument" binding:"required"`
}

type SubmitBookingRequest struct {
	RoomNumber   string         `json:"roomNumber" binding:"required"`
	UserID       uuid.UUID      `json:"userId" binding:"required"`
	CheckInDate  string         `json:"checkInDate" binding:"required"`
	CheckOutDate string         `json:"checkOutDate" binding:"required"`
	Persons      int            `json:"persons" binding:"required,min=1"`
	Guests       []GuestPayload `json:"guestList" binding:"required,min=1,dive"`
	Services     []string       `json:"appliedServices"`
	PromoCode    *string        `json:"promoCode,omitempty"`
}

func (r SubmitBookingRequest) GetPromoCode() *string {
	if r.PromoCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PromoCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r SubmitBookingRequest) ToCommand() (commands.SubmitBookingRequest, error) {
	checkIn, err := ParseDate(r.CheckInDate)
	if err != nil {
		return commands.SubmitBookingRequest{}, err
	}
	checkOut, err := ParseDate(r.CheckOutDate)
	if err != nil {
		return commands.SubmitBookingRequest{}, err
	}

	guests := make([]commands.GuestInput, 0, len(r.Guests))
	for _, g := range r.Guests {
		guests = append(guests, commands.GuestInput{
			Name:           g.Name,
			Surname:        g.Surname,
			Age:            g.Age,
			DocumentNumber: g.DocumentNumber,
		})
	}

	return commands.SubmitBookingRequest{
		RoomNumber:    r.RoomNumber,
		UserID:        r.UserID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Persons:       r.Persons,
		Guests:        guests,
		ServiceTitles: r.Services,
		PromoCode:     r.GetPromoCode(),
	}, nil
}

// ParseDate reads a calendar date without a time component. Stay boundaries
// are whole days, so no finer precision is accepted on the wire.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}
	return t, nil
}
