package domain

import "time"

type Booking struct {
	ID        int64
	FlightID  int64
	UserID    int64
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// BookingWithFlight is the read model for booking lists: the booking joined
// with its flight and the owning user's name.
type BookingWithFlight struct {
	Booking  Booking
	Flight   Flight
	Username string
}
