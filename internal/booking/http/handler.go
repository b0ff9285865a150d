package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quietriver/campus-booking-backend/internal/booking"
	"github.com/quietriver/campus-booking-backend/internal/pkg/request"
	"github.com/quietriver/campus-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	draft, err := req.Validate()
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), draft)
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, ConflictResponse{
				Error:                 "time slot already booked",
				ConflictingBookingIDs: conflict.BookingIDs,
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid booking id"})
		return
	}

	b, err := h.service.Get(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var (
		bookings []*booking.Booking
		err      error
	)
	switch {
	case req.UserID != 0:
		bookings, err = h.service.ListForUser(c.Request.Context(), req.UserID)
	case req.RoomID != 0:
		bookings, err = h.service.ListForRoom(c.Request.Context(), req.RoomID)
	default:
		bookings = h.service.ListAll(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

// Overlapping answers "which bookings intersect this window on this
// room-day"; the room id comes from the path, the window from the query.
func (h *Handler) Overlapping(c *gin.Context) {
	var idReq request.ByIDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid room id"})
		return
	}

	var req OverlapQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	date, start, end, err := req.Validate()
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.FindOverlapping(c.Request.Context(), idReq.ID, date, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid booking id"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
