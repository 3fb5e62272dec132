package booking

import (
	"fmt"
	"strings"

	"bitbucket.org/crgw/rental-hub/internal/rules"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// StatusAll selects every booking when filtering.
const StatusAll = "all"

var statuses = []Status{StatusPending, StatusActive, StatusCancelled, StatusCompleted}

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range statuses {
		if status == known {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: unknown booking status %q", rules.ErrInvalidInput, value)
}

// Booking is a booking as listed by the catalog service.
type Booking struct {
	ID            int        `json:"id"`
	VehicleID     int        `json:"carId"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	StartDate     rules.Date `json:"startDate"`
	EndDate       rules.Date `json:"endDate"`
	TotalPrice    float64    `json:"totalPrice"`
	Status        Status     `json:"status"`

	Vehicle *rules.Vehicle `json:"car,omitempty"`
}

// FilterByStatus keeps list order. An empty filter or "all" keeps everything.
func FilterByStatus(bookings []Booking, filter string) ([]Booking, error) {
	if filter == "" || strings.EqualFold(filter, StatusAll) {
		return bookings, nil
	}

	status, err := ParseStatus(filter)
	if err != nil {
		return nil, err
	}

	filtered := []Booking{}
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}

	return filtered, nil
}
