package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID                int64  `json:"id"`
	DepartureCity     string `json:"departure_city"`
	ArrivalCity       string `json:"arrival_city"`
	Image             string `json:"image"`
	Description       string `json:"description"`
	Route             string `json:"route"`
	DepartureDatetime string `json:"departure_datetime"`
	ArrivalDatetime   string `json:"arrival_datetime"`
	PriceCents        int64  `json:"price_cents"`
}

type flightDetailResponse struct {
	flightResponse
	DurationHours   int `json:"duration_hours"`
	DurationMinutes int `json:"duration_minutes"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
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

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hours, minutes := flight.Duration()
	c.JSON(http.StatusOK, flightDetailResponse{
		flightResponse:  toFlightResponse(*flight),
		DurationHours:   hours,
		DurationMinutes: minutes,
	})
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:                f.ID,
		DepartureCity:     f.DepartureCity,
		ArrivalCity:       f.ArrivalCity,
		Image:             f.Image,
		Description:       f.Description,
		Route:             f.Route,
		DepartureDatetime: f.DepartureDatetime.Format(time.RFC3339),
		ArrivalDatetime:   f.ArrivalDatetime.Format(time.RFC3339),
		PriceCents:        f.PriceCents,
	}
}
