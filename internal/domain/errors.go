package domain

import "errors"

var (
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUnauthorized         = errors.New("not logged in")
	ErrForbidden            = errors.New("forbidden")
	ErrFlightNotFound       = errors.New("flight not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBookingInput  = errors.New("full name, email and phone are required")
	ErrInvalidFlightInput   = errors.New("invalid flight data")
	ErrFlightHasBookings    = errors.New("flight has existing bookings")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)
