package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	bookingQueries queries.BookingQueries
}

func NewRoomHandler(bookingQueries queries.BookingQueries) *RoomHandler {
	return &RoomHandler{
		bookingQueries: bookingQueries,
	}
}

func (h *RoomHandler) GetFreeRooms(c *gin.Context) {
	checkIn, checkOut, ok := h.parseRangeParams(c)
	if !ok {
		return
	}

	rooms, err := h.bookingQueries.FreeRoomsBetween(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	response := make([]*resdto.RoomResponse, len(rooms))
	for i, rm := range rooms {
		response[i] = resdto.FromRoomView(rm)
	}
	c.JSON(http.StatusOK, response)
}

func (h *RoomHandler) GetRoomAvailability(c *gin.Context) {
	number := c.Param("number")
	checkIn, checkOut, ok := h.parseRangeParams(c)
	if !ok {
		return
	}

	available, err := h.bookingQueries.IsAvailable(c.Request.Context(), number, checkIn, checkOut)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomNumber: number,
		CheckIn:    c.Query("checkin"),
		CheckOut:   c.Query("checkOut"),
		Available:  available,
	})
}

func (h *RoomHandler) GetRoomBookings(c *gin.Context) {
	number := c.Param("number")
	checkIn, checkOut, ok := h.parseRangeParams(c)
	if !ok {
		return
	}

	items, err := h.bookingQueries.ListForRoom(c.Request.Context(), number, checkIn, checkOut)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

func (h *RoomHandler) parseRangeParams(c *gin.Context) (checkIn, checkOut time.Time, ok bool) {
	in, err := reqdto.ParseDate(c.Query("checkin"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid checkin date, expected YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	out, err := reqdto.ParseDate(c.Query("checkOut"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid checkOut date, expected YYYY-MM-DD", nil)
		return time.Time{}, time.Time{}, false
	}
	return in, out, true
}

func (h *RoomHandler) abortQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
	case errors.Is(err, queries.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
