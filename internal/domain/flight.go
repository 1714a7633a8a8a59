package domain

import "time"

type Flight struct {
	ID                int64
	DepartureCity     string
	ArrivalCity       string
	Image             string
	Description       string
	Route             string
	DepartureDatetime time.Time
	ArrivalDatetime   time.Time
	PriceCents        int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Duration returns the flight time as whole hours plus leftover minutes.
// Partial minutes are truncated, not rounded.
func (f Flight) Duration() (hours, minutes int) {
	total := int(f.ArrivalDatetime.Sub(f.DepartureDatetime).Seconds())
	return total / 3600, (total % 3600) / 60
}
