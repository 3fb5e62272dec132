package interfaces

import (
	"context"

	"bitbucket.org/crgw/rental-hub/internal/booking"
	"bitbucket.org/crgw/rental-hub/internal/rules"
)

type WithVehicles interface {
	ListVehicles(context.Context) ([]rules.Vehicle, error)
	GetVehicle(context.Context, int) (rules.Vehicle, error)
}

type WithCreateBooking interface {
	CreateBooking(context.Context, booking.Request, rules.PricingResult) (int, error)
}

type WithBookingAdmin interface {
	ListBookings(ctx context.Context, token string, status string) ([]booking.Booking, error)
	UpdateBookingStatus(ctx context.Context, token string, id int, status booking.Status) error
	CancelBooking(ctx context.Context, token string, id int) error
	ValidateBooking(ctx context.Context, token string, id int) error
}

type Catalog interface {
	WithVehicles
	WithCreateBooking
	WithBookingAdmin
}
