package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingWithFlight, error)
	ListAll(ctx context.Context) ([]domain.BookingWithFlight, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (flight_id, user_id, full_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		booking.FlightID, booking.UserID, booking.FullName, booking.Email, booking.Phone).
		Scan(&booking.ID, &booking.CreatedAt)
}

const bookingJoin = `SELECT b.id, b.flight_id, b.user_id, b.full_name, b.email, b.phone, b.created_at,
		f.id, f.departure_city, f.arrival_city, f.image, f.description, f.route, f.departure_datetime, f.arrival_datetime, f.price_cents, f.created_at, f.updated_at,
		u.username
	FROM bookings b
	JOIN flights f ON f.id = b.flight_id
	JOIN users u ON u.id = b.user_id`

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingWithFlight, error) {
	rows, err := r.db.Query(ctx, bookingJoin+` WHERE b.user_id=$1 ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingWithFlight, error) {
	rows, err := r.db.Query(ctx, bookingJoin+` ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func collectBookings(rows pgx.Rows) ([]domain.BookingWithFlight, error) {
	bookings := make([]domain.BookingWithFlight, 0)
	for rows.Next() {
		var b domain.BookingWithFlight
		if err := rows.Scan(
			&b.Booking.ID, &b.Booking.FlightID, &b.Booking.UserID, &b.Booking.FullName, &b.Booking.Email, &b.Booking.Phone, &b.Booking.CreatedAt,
			&b.Flight.ID, &b.Flight.DepartureCity, &b.Flight.ArrivalCity, &b.Flight.Image, &b.Flight.Description, &b.Flight.Route,
			&b.Flight.DepartureDatetime, &b.Flight.ArrivalDatetime, &b.Flight.PriceCents, &b.Flight.CreatedAt, &b.Flight.UpdatedAt,
			&b.Username,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
