package schema

import "fmt"

// RoundedFloat renders money with two decimals.
type RoundedFloat float64

func (f RoundedFloat) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%.2f", f)), nil
}

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

// CatalogRequestName labels outgoing calls in logs.
type CatalogRequestName string

const (
	ListVehicles        CatalogRequestName = "list-vehicles"
	GetVehicle          CatalogRequestName = "get-vehicle"
	CreateBooking       CatalogRequestName = "create-booking"
	ListBookings        CatalogRequestName = "list-bookings"
	UpdateBookingStatus CatalogRequestName = "update-booking-status"
	CancelBooking       CatalogRequestName = "cancel-booking"
	ValidateBooking     CatalogRequestName = "validate-booking"
)
