package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/handler/httperr"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req reqdto.SubmitBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	view, err := h.bookingCommands.Submit(c.Request.Context(), cmd)
	if err != nil {
		h.abortSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) abortSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errors.Is(err, commands.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Service not found", nil)
	case errors.Is(err, commands.ErrPromoNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Promo code not found", nil)
	case errors.Is(err, commands.ErrRoomUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room is unavailable", nil)
	case errors.Is(err, commands.ErrDateConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room is occupied for the requested dates", nil)
	case errors.Is(err, commands.ErrPromoExpired):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Promo code has expired", nil)
	case errors.Is(err, commands.ErrPromoNotYetValid):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Promo code is not yet valid", nil)
	case errors.Is(err, commands.ErrPromoInactive):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Promo code is inactive", nil)
	case errors.Is(err, commands.ErrPromoInvalidValue):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Promo code carries an invalid discount value", nil)
	case errors.Is(err, commands.ErrNonPositiveTotal):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Computed total is not positive", nil)
	case errors.Is(err, commands.ErrInvalidRequest):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.applyTransition(c, h.bookingCommands.Confirm)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.applyTransition(c, h.bookingCommands.Cancel)
}

func (h *BookingHandler) applyTransition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := apply(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, commands.ErrIllegalTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Illegal booking status transition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
