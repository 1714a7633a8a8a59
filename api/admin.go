package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/admin"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes explicit per-entity management endpoints. The group it
// registers on must enforce RequireAdmin. Responses never include password
// hashes.
type AdminHandler struct {
	service admin.AdminUseCase
}

type adminFlightRequest struct {
	DepartureCity     string    `json:"departure_city"`
	ArrivalCity       string    `json:"arrival_city"`
	Description       string    `json:"description"`
	Route             string    `json:"route"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	ArrivalDatetime   time.Time `json:"arrival_datetime"`
	PriceCents        int64     `json:"price_cents"`
}

type adminBookingResponse struct {
	bookingResponse
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func NewAdminHandler(service admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.listFlights)
	router.POST("/flights", h.createFlight)
	router.GET("/flights/:id", h.getFlight)
	router.PUT("/flights/:id", h.updateFlight)
	router.DELETE("/flights/:id", h.deleteFlight)
	router.POST("/flights/:id/image", h.uploadFlightImage)
	router.GET("/bookings", h.listBookings)
	router.DELETE("/bookings/:id", h.deleteBooking)
}

func (h *AdminHandler) listFlights(c *gin.Context) {
	flights, err := h.service.ListFlights(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]flightResponse, 0, len(flights))
	for _, f := range flights {
		resp = append(resp, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) getFlight(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetFlight(c.Request.Context(), id)
	if err != nil {
		h.renderFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *AdminHandler) createFlight(c *gin.Context) {
	var req adminFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.CreateFlight(c.Request.Context(), flightInput(req))
	if err != nil {
		h.renderFlightError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(*flight))
}

func (h *AdminHandler) updateFlight(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req adminFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.UpdateFlight(c.Request.Context(), id, flightInput(req))
	if err != nil {
		h.renderFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *AdminHandler) deleteFlight(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteFlight(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrFlightHasBookings) {
			c.JSON(http.StatusConflict, gin.H{"error": "flight has existing bookings"})
			return
		}
		h.renderFlightError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) uploadFlightImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	path, err := h.service.AttachFlightImage(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedImageType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only png, jpg and jpeg files are allowed"})
			return
		}
		h.renderFlightError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": path})
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := make([]adminBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		flight := toFlightResponse(b.Flight)
		resp = append(resp, adminBookingResponse{
			bookingResponse: bookingResponse{
				ID:        b.Booking.ID,
				FlightID:  b.Booking.FlightID,
				FullName:  b.Booking.FullName,
				Email:     b.Booking.Email,
				Phone:     b.Booking.Phone,
				CreatedAt: b.Booking.CreatedAt.Format(time.RFC3339),
				Flight:    &flight,
			},
			UserID:   b.Booking.UserID,
			Username: b.Username,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) deleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) renderFlightError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
	case errors.Is(err, domain.ErrInvalidFlightInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cities are required, price must be non-negative and arrival must be after departure"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func flightInput(req adminFlightRequest) admin.FlightInput {
	return admin.FlightInput{
		DepartureCity:     req.DepartureCity,
		ArrivalCity:       req.ArrivalCity,
		Description:       req.Description,
		Route:             req.Route,
		DepartureDatetime: req.DepartureDatetime,
		ArrivalDatetime:   req.ArrivalDatetime,
		PriceCents:        req.PriceCents,
	}
}
