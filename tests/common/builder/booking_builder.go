//go:build unit || e2e

package builder

import (
	"time"

	dombooking "hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/hotelservice"
	dompromo "hotel-booking/internal/domain/promo"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/shared/money"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingBuilder assembles valid admission inputs: room "101" at 1500.00 per
// night, a three night stay, one service at 150.00 per day. Mutate fields
// before building to produce invalid variants.
type BookingBuilder struct {
	RoomID        uuid.UUID
	RoomNumber    string
	RoomType      room.Type
	Capacity      int
	PricePerNight string
	IsAvailable   bool

	UserID   uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
	Persons  int

	GuestName     string
	GuestSurname  string
	GuestAge      int
	GuestDocument string

	ServiceTitle       string
	ServiceDescription string
	ServicePricePerDay string

	PromoCode *string
}

func NewBookingBuilder() *BookingBuilder {
	checkIn := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	return &BookingBuilder{
		RoomID:        uuid.New(),
		RoomNumber:    "101",
		RoomType:      room.TypeStandart,
		Capacity:      3,
		PricePerNight: "1500.00",
		IsAvailable:   true,

		UserID:   uuid.New(),
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, 3),
		Persons:  2,

		GuestName:     "Иван",
		GuestSurname:  "Иванов",
		GuestAge:      30,
		GuestDocument: "4510123456",

		ServiceTitle:       "Уборка",
		ServiceDescription: "Ежедневная уборка номера",
		ServicePricePerDay: "150.00",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildRoom() *room.Room {
	rm, err := room.NewRoom(b.RoomID, b.RoomNumber, b.RoomType, b.Capacity, money.Must(b.PricePerNight), b.IsAvailable)
	if err != nil {
		panic(err)
	}
	return rm
}

func (b *BookingBuilder) BuildStay() dombooking.StayRange {
	stay, err := dombooking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	return stay
}

func (b *BookingBuilder) BuildGuests() []dombooking.Guest {
	guest, err := dombooking.NewGuest(b.GuestName, b.GuestSurname, b.GuestAge, b.GuestDocument)
	if err != nil {
		panic(err)
	}
	return []dombooking.Guest{guest}
}

func (b *BookingBuilder) BuildServices() hotelservice.Set {
	svc, err := hotelservice.NewService(uuid.New(), b.ServiceTitle, b.ServiceDescription, money.Must(b.ServicePricePerDay))
	if err != nil {
		panic(err)
	}
	set, err := hotelservice.NewSet(svc)
	if err != nil {
		panic(err)
	}
	return set
}

func (b *BookingBuilder) BuildEmptyServices() hotelservice.Set {
	set, err := hotelservice.NewSet()
	if err != nil {
		panic(err)
	}
	return set
}

func (b *BookingBuilder) BuildSubmitCommand() commands.SubmitBookingRequest {
	return commands.SubmitBookingRequest{
		RoomNumber:   b.RoomNumber,
		UserID:       b.UserID,
		CheckInDate:  b.CheckIn,
		CheckOutDate: b.CheckOut,
		Persons:      b.Persons,
		Guests: []commands.GuestInput{{
			Name:           b.GuestName,
			Surname:        b.GuestSurname,
			Age:            b.GuestAge,
			DocumentNumber: b.GuestDocument,
		}},
		ServiceTitles: []string{b.ServiceTitle},
		PromoCode:     b.PromoCode,
	}
}

func (b *BookingBuilder) BuildSubmitRequestDTO() map[string]any {
	return map[string]any{
		"roomNumber":   b.RoomNumber,
		"userId":       b.UserID.String(),
		"checkInDate":  b.CheckIn.Format("2006-01-02"),
		"checkOutDate": b.CheckOut.Format("2006-01-02"),
		"persons":      b.Persons,
		"guestList": []map[string]any{{
			"name":           b.GuestName,
			"surname":        b.GuestSurname,
			"age":            b.GuestAge,
			"numberDocument": b.GuestDocument,
		}},
		"appliedServices": []string{b.ServiceTitle},
	}
}

func (b *BookingBuilder) BuildRoomSnapshot() *shared.RoomSnapshot {
	now := time.Now().UTC()
	return &shared.RoomSnapshot{
		ID:            b.RoomID,
		Number:        b.RoomNumber,
		RoomType:      string(b.RoomType),
		Capacity:      b.Capacity,
		PricePerNight: money.Must(b.PricePerNight).Kopecks(),
		IsAvailable:   b.IsAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *BookingBuilder) BuildServiceSnapshot() *shared.ServiceSnapshot {
	return &shared.ServiceSnapshot{
		ID:          uuid.New(),
		Title:       b.ServiceTitle,
		Description: b.ServiceDescription,
		PricePerDay: money.Must(b.ServicePricePerDay).Kopecks(),
	}
}

func (b *BookingBuilder) BuildView(id uuid.UUID, status string, total string) *queries.BookingView {
	return &queries.BookingView{
		ID:           id,
		Status:       status,
		TotalPrice:   total,
		CheckInDate:  b.CheckIn,
		CheckOutDate: b.CheckOut,
		RoomNumber:   b.RoomNumber,
		Persons:      b.Persons,
		UserID:       b.UserID,
		PromoCode:    b.PromoCode,
		Services: []queries.ServiceView{{
			Title:       b.ServiceTitle,
			Description: b.ServiceDescription,
			PricePerDay: b.ServicePricePerDay,
		}},
		Guests: []queries.GuestView{{
			Name:           b.GuestName,
			Surname:        b.GuestSurname,
			Age:            b.GuestAge,
			DocumentNumber: b.GuestDocument,
		}},
		CreatedAt: time.Now().UTC(),
	}
}

// PromoBuilder produces a percent code valid around today.
type PromoBuilder struct {
	Code       string
	Kind       dompromo.Kind
	AmountOff  string
	Percent    float64
	ValidFrom  time.Time
	ValidUntil time.Time
	Active     bool
}

func NewPromoBuilder() *PromoBuilder {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return &PromoBuilder{
		Code:       "SALE10",
		Kind:       dompromo.KindPercent,
		AmountOff:  "1000.00",
		Percent:    10,
		ValidFrom:  today.AddDate(0, 0, -30),
		ValidUntil: today.AddDate(0, 0, 30),
		Active:     true,
	}
}

func (p *PromoBuilder) With(mutate func(*PromoBuilder)) *PromoBuilder {
	mutate(p)
	return p
}

func (p *PromoBuilder) BuildDomain() (*dompromo.PromoCode, error) {
	var (
		discount dompromo.Discount
		err      error
	)
	if p.Kind == dompromo.KindFixed {
		discount, err = dompromo.NewFixedDiscount(money.Must(p.AmountOff))
	} else {
		discount, err = dompromo.NewPercentDiscount(p.Percent)
	}
	if err != nil {
		return nil, err
	}
	return dompromo.NewPromoCode(p.Code, discount, p.ValidFrom, p.ValidUntil, p.Active)
}

func (p *PromoBuilder) BuildSnapshot() *shared.PromoSnapshot {
	snap := &shared.PromoSnapshot{
		Code:       p.Code,
		Kind:       string(p.Kind),
		ValidFrom:  p.ValidFrom,
		ValidUntil: p.ValidUntil,
		IsActive:   p.Active,
	}
	if p.Kind == dompromo.KindFixed {
		amount := money.Must(p.AmountOff).Kopecks()
		snap.AmountOff = &amount
	} else {
		percent := p.Percent
		snap.PercentOff = &percent
	}
	return snap
}
