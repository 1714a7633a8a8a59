package booking

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput, userID int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookingWithFlight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	producer           Producer
	eventsTopic        string
	notificationsTopic string
}

type CreateBookingInput struct {
	FlightID int64  `json:"flight_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		flights:     flights,
		producer:    producer,
		eventsTopic: eventsTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books the flight for the acting user. Contact fields must be
// non-blank but are stored exactly as submitted, including whitespace.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput, userID int64) (*domain.Booking, error) {
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return nil, domain.ErrInvalidBookingInput
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		FlightID: flight.ID,
		UserID:   userID,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking, flight); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %d: %v", booking.ID, err)
	}
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.BookingWithFlight, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, flight *domain.Flight) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		FlightID:  booking.FlightID,
		UserID:    booking.UserID,
		FullName:  booking.FullName,
		Email:     booking.Email,
		Phone:     booking.Phone,
		Route:     flight.Route,
		CreatedAt: booking.CreatedAt,
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, key, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
