package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type bookingResponse struct {
	ID        int64           `json:"id"`
	FlightID  int64           `json:"flight_id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	CreatedAt string          `json:"created_at"`
	Flight    *flightResponse `json:"flight,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register expects a group that already enforces RequireLogin.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/flights/:id/book", h.create)
	router.GET("/bookings", h.list)
}

func (h *BookingHandler) create(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	created, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		FlightID: flightID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFlightNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		case errors.Is(err, domain.ErrInvalidBookingInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in all fields", "redirect": "/flights/" + c.Param("id")})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "flight booked successfully",
		"redirect": "/bookings",
		"booking": bookingResponse{
			ID:        created.ID,
			FlightID:  created.FlightID,
			FullName:  created.FullName,
			Email:     created.Email,
			Phone:     created.Phone,
			CreatedAt: created.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (h *BookingHandler) list(c *gin.Context) {
	user := currentUser(c)
	bookings, err := h.service.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		flight := toFlightResponse(b.Flight)
		resp = append(resp, bookingResponse{
			ID:        b.Booking.ID,
			FlightID:  b.Booking.FlightID,
			FullName:  b.Booking.FullName,
			Email:     b.Booking.Email,
			Phone:     b.Booking.Phone,
			CreatedAt: b.Booking.CreatedAt.Format(time.RFC3339),
			Flight:    &flight,
		})
	}
	c.JSON(http.StatusOK, resp)
}
