package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgForeignKeyViolation = "23503"

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, image string) error
	SeedDefaults(ctx context.Context) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, departure_city, arrival_city, image, description, route, departure_datetime, arrival_datetime, price_cents, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (departure_city, arrival_city, image, description, route, departure_datetime, arrival_datetime, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.DepartureCity, flight.ArrivalCity, flight.Image, flight.Description, flight.Route,
		flight.DepartureDatetime, flight.ArrivalDatetime, flight.PriceCents).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `UPDATE flights
		SET departure_city=$1, arrival_city=$2, description=$3, route=$4, departure_datetime=$5, arrival_datetime=$6, price_cents=$7, updated_at=now()
		WHERE id=$8
		RETURNING image, created_at, updated_at`,
		flight.DepartureCity, flight.ArrivalCity, flight.Description, flight.Route,
		flight.DepartureDatetime, flight.ArrivalDatetime, flight.PriceCents, flight.ID).
		Scan(&flight.Image, &flight.CreatedAt, &flight.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrFlightNotFound
	}
	return err
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrFlightHasBookings
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) SetImage(ctx context.Context, id int64, image string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET image=$1, updated_at=now() WHERE id=$2`, image, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// SeedDefaults inserts the two demonstration flights when the catalog is
// empty. The check and the inserts run in one transaction so concurrent
// startups cannot seed twice.
func (r *PGFlightRepository) SeedDefaults(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights)`).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	seed := []domain.Flight{
		{
			DepartureCity:     "Moscow",
			ArrivalCity:       "Saint Petersburg",
			Image:             "/uploads/moscow_spb.jpg",
			Description:       "Direct flight from Moscow to Saint Petersburg.",
			Route:             "MOW-SPB",
			DepartureDatetime: time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC),
			ArrivalDatetime:   time.Date(2024, 5, 10, 11, 30, 0, 0, time.UTC),
			PriceCents:        350000,
		},
		{
			DepartureCity:     "Moscow",
			ArrivalCity:       "Yekaterinburg",
			Image:             "/uploads/moscow_ekb.jpg",
			Description:       "Direct flight from Moscow to Yekaterinburg.",
			Route:             "MOW-EKB",
			DepartureDatetime: time.Date(2024, 5, 12, 14, 0, 0, 0, time.UTC),
			ArrivalDatetime:   time.Date(2024, 5, 12, 17, 30, 0, 0, time.UTC),
			PriceCents:        420000,
		},
	}
	for _, f := range seed {
		if _, err := tx.Exec(ctx, `INSERT INTO flights (departure_city, arrival_city, image, description, route, departure_datetime, arrival_datetime, price_cents)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			f.DepartureCity, f.ArrivalCity, f.Image, f.Description, f.Route,
			f.DepartureDatetime, f.ArrivalDatetime, f.PriceCents); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity, &f.Image, &f.Description, &f.Route,
		&f.DepartureDatetime, &f.ArrivalDatetime, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
