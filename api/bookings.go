package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/littlelemon/internal/domain"
	"github.com/zvrva/littlelemon/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingRequest struct {
	Name        *string `json:"name"`
	NoOfGuests  *int    `json:"no_of_guests"`
	BookingDate *string `json:"bookingDate"`
}

func (r bookingRequest) input() booking.BookingInput {
	return booking.BookingInput{
		Name:        r.Name,
		NoOfGuests:  r.NoOfGuests,
		BookingDate: r.BookingDate,
	}
}

type bookingResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	NoOfGuests  int                `json:"no_of_guests"`
	BookingDate domain.BookingTime `json:"bookingDate"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		NoOfGuests:  b.NoOfGuests,
		BookingDate: b.BookingDate,
	}
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.retrieve)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) retrieve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := errIfBadID(c, err); err != nil {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := errIfBadID(c, err); err != nil {
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := errIfBadID(c, err); err != nil {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
