package booking

import (
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/rules"
)

// Summary backs the confirmation page.
type Summary struct {
	Reference      string     `json:"bookingReference"`
	VehicleID      int        `json:"vehicleId"`
	VehicleName    string     `json:"vehicleName"`
	VehicleImage   string     `json:"vehicleImage,omitempty"`
	CustomerName   string     `json:"customerName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	PickupCity     string     `json:"pickupCity"`
	PickupQuarter  string     `json:"pickupQuarter"`
	DropoffCity    string     `json:"dropoffCity"`
	PickupDate     rules.Date `json:"pickupDate"`
	DropoffDate    rules.Date `json:"dropoffDate"`
	Days           int        `json:"days"`
	PricePerDay    float64    `json:"pricePerDay"`
	Total          float64    `json:"totalPrice"`
	PaymentMethod  string     `json:"paymentMethod"`
	PaymentDetails string     `json:"paymentDetails"`
}

// CurrentTimeFunc Current time. Can be mocked for testing.
var CurrentTimeFunc = time.Now

// Reference prefers the id assigned by the booking service.
func Reference(bookingID int) string {
	if bookingID > 0 {
		return strconv.Itoa(bookingID)
	}
	return fmt.Sprintf("REF-%d", CurrentTimeFunc().UnixMilli())
}

func NewSummary(request Request, vehicle rules.Vehicle, pricing rules.PricingResult, bookingID int) Summary {
	return Summary{
		Reference:      Reference(bookingID),
		VehicleID:      vehicle.ID,
		VehicleName:    vehicle.Name,
		VehicleImage:   vehicle.ImageURL,
		CustomerName:   request.FirstName + " " + request.LastName,
		Email:          request.Email,
		Phone:          request.Phone,
		PickupCity:     request.PickupCity,
		PickupQuarter:  request.PickupQuarter,
		DropoffCity:    request.DropoffCity,
		PickupDate:     request.PickupDate,
		DropoffDate:    request.DropoffDate,
		Days:           pricing.Days,
		PricePerDay:    pricing.PricePerDay,
		Total:          pricing.Total,
		PaymentMethod:  request.PaymentMethodCode(),
		PaymentDetails: request.PaymentDetails(),
	}
}
