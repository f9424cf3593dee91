//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/shared"
	"hotel-booking/tests/common/builder"
	queriesmock "hotel-booking/tests/mock/queries"
	sharedmock "hotel-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockUow           *sharedmock.MockUnitOfWork
	mockTx            *sharedmock.MockTx
	mockReads         *sharedmock.MockCommandReads
	mockBookings      *sharedmock.MockBookingRepository
	mockNotifications *sharedmock.MockNotificationRepository
	mockQueries       *queriesmock.MockBookingQueries

	today    time.Time
	commands commands.BookingCommands
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockNotifications = sharedmock.NewMockNotificationRepository(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)

	s.mockUow.EXPECT().CommandReads().Return(s.mockReads).AnyTimes()
	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().Notifications().Return(s.mockNotifications).AnyTimes()
	s.mockTx.EXPECT().Reads().Return(s.mockReads).AnyTimes()

	s.today = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(s.today)
	factory := booking.NewFactory(clk, booking.NewNightlyQuoter())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.commands = commands.NewBookingCommands(s.mockUow, factory, s.mockQueries, clk, logger)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingCommandsTestSuite) expectWithin() {
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
}

func (s *BookingCommandsTestSuite) futureBuilder() *builder.BookingBuilder {
	return builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.CheckIn = s.today.AddDate(0, 0, 9)
		b.CheckOut = s.today.AddDate(0, 0, 12)
	})
}

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", errors.New("no rows in result set"), infra.KindNotFound)
}

// ================================================================================
// Submit
// ================================================================================

func (s *BookingCommandsTestSuite) TestSubmitSuccess() {
	b := s.futureBuilder()
	req := b.BuildSubmitCommand()
	bookingID := uuid.New()
	view := b.BuildView(bookingID, "REQUEST", "4950.00")

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.expectWithin()
	s.mockBookings.EXPECT().LockRoom(gomock.Any(), b.RoomID).Return(nil)
	s.mockBookings.EXPECT().HasActiveOverlap(gomock.Any(), b.RoomID, gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, created *booking.Booking) (uuid.UUID, error) {
			s.Equal(booking.StatusRequest, created.Status())
			s.Equal("4950.00", created.Total().String())
			return bookingID, nil
		})
	s.mockNotifications.EXPECT().CreateJob(gomock.Any(), "email", "booking_requested", gomock.Any(), gomock.Any()).Return(nil)
	s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil)

	got, err := s.commands.Submit(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(view, got)
}

func (s *BookingCommandsTestSuite) TestSubmitWithPercentPromo() {
	b := s.futureBuilder()
	promoCode := "SALE10"
	b.PromoCode = &promoCode
	req := b.BuildSubmitCommand()
	bookingID := uuid.New()

	promoSnap := builder.NewPromoBuilder().With(func(p *builder.PromoBuilder) {
		p.ValidFrom = s.today.AddDate(0, 0, -10)
		p.ValidUntil = s.today.AddDate(0, 0, 30)
	}).BuildSnapshot()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.mockReads.EXPECT().PromoByCode(gomock.Any(), "SALE10").Return(promoSnap, nil)
	s.expectWithin()
	s.mockBookings.EXPECT().LockRoom(gomock.Any(), b.RoomID).Return(nil)
	s.mockBookings.EXPECT().HasActiveOverlap(gomock.Any(), b.RoomID, gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, created *booking.Booking) (uuid.UUID, error) {
			s.Equal("4455.00", created.Total().String())
			s.Require().NotNil(created.PromoCode())
			s.Equal("SALE10", *created.PromoCode())
			return bookingID, nil
		})
	s.mockNotifications.EXPECT().CreateJob(gomock.Any(), "email", "booking_requested", gomock.Any(), gomock.Any()).Return(nil)
	s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(b.BuildView(bookingID, "REQUEST", "4455.00"), nil)

	got, err := s.commands.Submit(context.Background(), req)
	s.Require().NoError(err)
	s.Equal("4455.00", got.TotalPrice)
}

func (s *BookingCommandsTestSuite) TestSubmitInvalidRange() {
	b := s.futureBuilder()
	b.CheckOut = b.CheckIn
	req := b.BuildSubmitCommand()

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrInvalidRequest)
}

func (s *BookingCommandsTestSuite) TestSubmitInvalidGuest() {
	b := s.futureBuilder()
	b.GuestName = "Ivan"
	req := b.BuildSubmitCommand()

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrInvalidRequest)
}

func (s *BookingCommandsTestSuite) TestSubmitRoomNotFound() {
	req := s.futureBuilder().BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(nil, notFoundErr())

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrRoomNotFound)
}

func (s *BookingCommandsTestSuite) TestSubmitRoomUnavailable() {
	b := s.futureBuilder()
	b.IsAvailable = false
	req := b.BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrRoomUnavailable)
}

func (s *BookingCommandsTestSuite) TestSubmitServiceNotFound() {
	b := s.futureBuilder()
	req := b.BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{}, nil)

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrServiceNotFound)
}

func (s *BookingCommandsTestSuite) TestSubmitPromoNotFound() {
	b := s.futureBuilder()
	promoCode := "НЕТУ"
	b.PromoCode = &promoCode
	req := b.BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.mockReads.EXPECT().PromoByCode(gomock.Any(), "НЕТУ").Return(nil, notFoundErr())

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrPromoNotFound)
}

func (s *BookingCommandsTestSuite) TestSubmitExpiredPromo() {
	b := s.futureBuilder()
	promoCode := "SALE10"
	b.PromoCode = &promoCode
	req := b.BuildSubmitCommand()

	promoSnap := builder.NewPromoBuilder().With(func(p *builder.PromoBuilder) {
		p.ValidFrom = s.today.AddDate(0, 0, -60)
		p.ValidUntil = s.today.AddDate(0, 0, -30)
	}).BuildSnapshot()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.mockReads.EXPECT().PromoByCode(gomock.Any(), "SALE10").Return(promoSnap, nil)
	s.expectWithin()
	s.mockBookings.EXPECT().LockRoom(gomock.Any(), b.RoomID).Return(nil)
	s.mockBookings.EXPECT().HasActiveOverlap(gomock.Any(), b.RoomID, gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrPromoExpired)
}

func (s *BookingCommandsTestSuite) TestSubmitDateConflict() {
	b := s.futureBuilder()
	req := b.BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.expectWithin()
	s.mockBookings.EXPECT().LockRoom(gomock.Any(), b.RoomID).Return(nil)
	s.mockBookings.EXPECT().HasActiveOverlap(gomock.Any(), b.RoomID, gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrDateConflict)
}

func (s *BookingCommandsTestSuite) TestSubmitRaceLostToExclusionConstraint() {
	b := s.futureBuilder()
	req := b.BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.expectWithin()
	s.mockBookings.EXPECT().LockRoom(gomock.Any(), b.RoomID).Return(nil)
	s.mockBookings.EXPECT().HasActiveOverlap(gomock.Any(), b.RoomID, gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(uuid.Nil, infra.WrapRepoErr("overlap", errors.New("exclusion violation"), infra.KindConflict))

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrDateConflict)
}

func (s *BookingCommandsTestSuite) TestSubmitPastCheckIn() {
	b := s.futureBuilder()
	b.CheckIn = s.today.AddDate(0, 0, -3)
	b.CheckOut = s.today.AddDate(0, 0, 2)
	req := b.BuildSubmitCommand()

	s.mockReads.EXPECT().RoomByNumber(gomock.Any(), "101").Return(b.BuildRoomSnapshot(), nil)
	s.mockReads.EXPECT().ServicesByTitles(gomock.Any(), []string{"Уборка"}).
		Return([]*shared.ServiceSnapshot{b.BuildServiceSnapshot()}, nil)
	s.expectWithin()
	s.mockBookings.EXPECT().LockRoom(gomock.Any(), b.RoomID).Return(nil)
	s.mockBookings.EXPECT().HasActiveOverlap(gomock.Any(), b.RoomID, gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := s.commands.Submit(context.Background(), req)
	s.ErrorIs(err, commands.ErrInvalidRequest)
}

// ================================================================================
// Confirm / Cancel
// ================================================================================

func (s *BookingCommandsTestSuite) snapshot(id uuid.UUID, status string) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        id,
		RoomID:    uuid.New(),
		UserID:    uuid.New(),
		CheckIn:   s.today.AddDate(0, 0, 9),
		CheckOut:  s.today.AddDate(0, 0, 12),
		Persons:   2,
		Status:    status,
		Total:     495000,
		CreatedAt: s.today,
		UpdatedAt: s.today,
	}
}

func (s *BookingCommandsTestSuite) TestConfirmRequest() {
	id := uuid.New()
	view := s.futureBuilder().BuildView(id, "CONFIRMED", "4950.00")

	s.expectWithin()
	s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(s.snapshot(id, "REQUEST"), nil)
	s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), id, booking.StatusConfirmed, gomock.Any()).Return(nil)
	s.mockNotifications.EXPECT().CreateJob(gomock.Any(), "email", "booking_confirmed", gomock.Any(), gomock.Any()).Return(nil)
	s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil)

	got, err := s.commands.Confirm(context.Background(), id)
	s.Require().NoError(err)
	s.Equal("CONFIRMED", got.Status)
}

func (s *BookingCommandsTestSuite) TestCancelConfirmed() {
	id := uuid.New()
	view := s.futureBuilder().BuildView(id, "CANCELLED", "4950.00")

	s.expectWithin()
	s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(s.snapshot(id, "CONFIRMED"), nil)
	s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), id, booking.StatusCancelled, gomock.Any()).Return(nil)
	s.mockNotifications.EXPECT().CreateJob(gomock.Any(), "email", "booking_cancelled", gomock.Any(), gomock.Any()).Return(nil)
	s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil)

	got, err := s.commands.Cancel(context.Background(), id)
	s.Require().NoError(err)
	s.Equal("CANCELLED", got.Status)
}

func (s *BookingCommandsTestSuite) TestCancelAlreadyCancelledIsNoOp() {
	id := uuid.New()
	view := s.futureBuilder().BuildView(id, "CANCELLED", "4950.00")

	s.expectWithin()
	s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(s.snapshot(id, "CANCELLED"), nil)
	// No UpdateStatus, no notification: the status is already in place.
	s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil)

	got, err := s.commands.Cancel(context.Background(), id)
	s.Require().NoError(err)
	s.Equal("CANCELLED", got.Status)
}

func (s *BookingCommandsTestSuite) TestConfirmCancelledIsIllegal() {
	id := uuid.New()

	s.expectWithin()
	s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(s.snapshot(id, "CANCELLED"), nil)

	_, err := s.commands.Confirm(context.Background(), id)
	s.ErrorIs(err, commands.ErrIllegalTransition)
}

func (s *BookingCommandsTestSuite) TestConfirmMissingBooking() {
	id := uuid.New()

	s.expectWithin()
	s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(nil, notFoundErr())

	_, err := s.commands.Confirm(context.Background(), id)
	s.ErrorIs(err, commands.ErrBookingNotFound)
}
