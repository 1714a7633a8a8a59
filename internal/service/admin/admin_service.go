package admin

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type AdminUseCase interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	CreateFlight(ctx context.Context, input FlightInput) (*domain.Flight, error)
	UpdateFlight(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, id int64) error
	AttachFlightImage(ctx context.Context, id int64, filename string, file io.Reader) (string, error)
	ListBookings(ctx context.Context) ([]domain.BookingWithFlight, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// ImageStore saves an uploaded image and returns its public path. The store
// rejects anything outside the png/jpg/jpeg allow-list.
type ImageStore interface {
	Save(filename string, file io.Reader) (string, error)
}

type AdminService struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	images   ImageStore
}

type FlightInput struct {
	DepartureCity     string    `json:"departure_city"`
	ArrivalCity       string    `json:"arrival_city"`
	Description       string    `json:"description"`
	Route             string    `json:"route"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	ArrivalDatetime   time.Time `json:"arrival_datetime"`
	PriceCents        int64     `json:"price_cents"`
}

func NewAdminService(flights repository.FlightRepository, bookings repository.BookingRepository, images ImageStore) *AdminService {
	return &AdminService{flights: flights, bookings: bookings, images: images}
}

func (s *AdminService) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	return s.flights.List(ctx)
}

func (s *AdminService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *AdminService) CreateFlight(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := validateFlightInput(input); err != nil {
		return nil, err
	}
	flight := flightFromInput(input)
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *AdminService) UpdateFlight(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	if err := validateFlightInput(input); err != nil {
		return nil, err
	}
	flight := flightFromInput(input)
	flight.ID = id
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

// DeleteFlight refuses to remove a flight that still has bookings; the
// repository maps the foreign key violation to ErrFlightHasBookings.
func (s *AdminService) DeleteFlight(ctx context.Context, id int64) error {
	return s.flights.Delete(ctx, id)
}

func (s *AdminService) AttachFlightImage(ctx context.Context, id int64, filename string, file io.Reader) (string, error) {
	if _, err := s.flights.GetByID(ctx, id); err != nil {
		return "", err
	}
	path, err := s.images.Save(filename, file)
	if err != nil {
		return "", err
	}
	if err := s.flights.SetImage(ctx, id, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *AdminService) ListBookings(ctx context.Context) ([]domain.BookingWithFlight, error) {
	return s.bookings.ListAll(ctx)
}

func (s *AdminService) DeleteBooking(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}

func validateFlightInput(input FlightInput) error {
	if strings.TrimSpace(input.DepartureCity) == "" || strings.TrimSpace(input.ArrivalCity) == "" {
		return domain.ErrInvalidFlightInput
	}
	if input.PriceCents < 0 {
		return domain.ErrInvalidFlightInput
	}
	if !input.ArrivalDatetime.After(input.DepartureDatetime) {
		return domain.ErrInvalidFlightInput
	}
	return nil
}

func flightFromInput(input FlightInput) *domain.Flight {
	return &domain.Flight{
		DepartureCity:     input.DepartureCity,
		ArrivalCity:       input.ArrivalCity,
		Description:       input.Description,
		Route:             input.Route,
		DepartureDatetime: input.DepartureDatetime,
		ArrivalDatetime:   input.ArrivalDatetime,
		PriceCents:        input.PriceCents,
	}
}

var _ AdminUseCase = (*AdminService)(nil)
