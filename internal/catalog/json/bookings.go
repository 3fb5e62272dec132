package json

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/booking"
	"bitbucket.org/crgw/rental-hub/internal/rules"
)

// Timestamp reads the ISO datetimes the booking service uses for rental dates.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		parsed, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			return err
		}
	}

	t.Time = parsed
	return nil
}

// Date is the calendar date of the timestamp in UTC.
func (t Timestamp) Date() rules.Date {
	if t.IsZero() {
		return rules.Date{}
	}
	return rules.DateOf(t.UTC())
}

type BookingRQ struct {
	CarID         int     `json:"carId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	PickupCity    string  `json:"pickupCity,omitempty"`
	DropoffCity   string  `json:"dropoffCity,omitempty"`
	PaymentMethod string  `json:"paymentMethod"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	TotalPrice    float64 `json:"totalPrice"`
}

// NewBookingRQ builds the upstream payload. Dates are sent as midnight UTC
// ISO timestamps and the total is the one computed server side.
func NewBookingRQ(request booking.Request, pricing rules.PricingResult) BookingRQ {
	return BookingRQ{
		CarID:         request.VehicleID,
		FirstName:     request.FirstName,
		LastName:      request.LastName,
		Email:         request.Email,
		Phone:         request.Phone,
		Address:       request.PickupQuarter,
		PickupCity:    request.PickupCity,
		DropoffCity:   request.DropoffCity,
		PaymentMethod: request.PaymentMethodCode(),
		StartDate:     request.PickupDate.Time().Format(time.RFC3339),
		EndDate:       request.DropoffDate.Time().Format(time.RFC3339),
		TotalPrice:    pricing.Total,
	}
}

type BookingRS struct {
	ID            Integer   `json:"id"`
	CarID         Integer   `json:"carId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"paymentMethod"`
	StartDate     Timestamp `json:"startDate"`
	EndDate       Timestamp `json:"endDate"`
	TotalPrice    Number    `json:"totalPrice"`
	Status        string    `json:"status"`
	Car           *CarRS    `json:"car"`
}

func (b BookingRS) Booking() booking.Booking {
	mapped := booking.Booking{
		ID:            b.ID.Int(),
		VehicleID:     b.CarID.Int(),
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Email:         b.Email,
		Phone:         b.Phone,
		Address:       b.Address,
		PaymentMethod: b.PaymentMethod,
		StartDate:     b.StartDate.Date(),
		EndDate:       b.EndDate.Date(),
		TotalPrice:    b.TotalPrice.Float(),
		Status:        booking.Status(strings.ToLower(b.Status)),
	}

	if b.Car != nil {
		vehicle := b.Car.Vehicle()
		mapped.Vehicle = &vehicle
		if mapped.VehicleID == 0 {
			mapped.VehicleID = vehicle.ID
		}
	}

	return mapped
}

type BookingsRQ struct {
	Status string `url:"status,omitempty"`
}

type BookingStatusRQ struct {
	Status string `json:"status"`
}

type BookingActionRQ struct {
	BookingID int `json:"bookingId"`
}
