package schema

import (
	"strings"

	"bitbucket.org/crgw/rental-hub/internal/booking"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/session"
	"bitbucket.org/crgw/rental-hub/internal/tools/converting"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// VehiclesRequestParams binds the search page query string.
type VehiclesRequestParams struct {
	Category      string   `form:"category"`
	Seats         int      `form:"seats" binding:"omitempty,min=1"`
	Destination   string   `form:"destination"`
	HasAC         bool     `form:"ac"`
	HasRearCamera bool     `form:"rearCamera"`
	TouchScreen   bool     `form:"touchScreen"`
	FourByFour    bool     `form:"fourByFour"`
	AvailableOnly bool     `form:"availableOnly"`
	PriceMin      *float64 `form:"priceMin" binding:"omitempty,min=0"`
	PriceMax      *float64 `form:"priceMax" binding:"omitempty,min=0"`
	Limit         int      `form:"limit" binding:"omitempty,min=1"`
}

func (p VehiclesRequestParams) Criteria() rules.FilterCriteria {
	return rules.FilterCriteria{
		Category:           p.Category,
		Seats:              p.Seats,
		Destination:        p.Destination,
		RequireAC:          p.HasAC,
		RequireRearCamera:  p.HasRearCamera,
		RequireTouchScreen: p.TouchScreen,
		Require4x4:         p.FourByFour,
		AvailableOnly:      p.AvailableOnly,
		PriceMin:           p.PriceMin,
		PriceMax:           p.PriceMax,
	}
}

func NewDestinationInfo(destination string, destinations *rules.DestinationSet) *DestinationInfo {
	if strings.TrimSpace(destination) == "" {
		return nil
	}

	classification := destinations.Classify(destination)
	return converting.PointerToValue(DestinationInfo{
		Name:           strings.TrimSpace(destination),
		Classification: classification.String(),
		Requires4x4:    classification == rules.FourByFourRequired,
	})
}

// Truncate keeps the first limit vehicles. A limit of zero keeps all of them.
func (r VehiclesResponse) Truncate(limit int) VehiclesResponse {
	if limit > 0 && len(r.Vehicles) > limit {
		r.Vehicles = r.Vehicles[:limit]
		r.Count = limit
	}

	return r
}

type DestinationInfo struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
	Requires4x4    bool   `json:"requires4x4"`
}

type VehiclesResponse struct {
	Vehicles    []rules.Vehicle      `json:"vehicles"`
	Count       int                  `json:"count"`
	Criteria    rules.FilterCriteria `json:"criteria"`
	Destination *DestinationInfo     `json:"destination,omitempty"`
}

type VehicleResponse struct {
	Vehicle rules.Vehicle   `json:"vehicle"`
	Similar []rules.Vehicle `json:"similar"`
}

type DestinationsResponse struct {
	Flexible      []string `json:"flexible"`
	FourByFour    []string `json:"fourByFour"`
	UnknownPolicy string   `json:"unknownPolicy"`
}

// VehicleQuoteRequestParams binds the car detail page date pickers.
type VehicleQuoteRequestParams struct {
	PickupDate  string `form:"pickupDate" binding:"omitempty,datetime=2006-01-02"`
	DropoffDate string `form:"dropoffDate" binding:"omitempty,datetime=2006-01-02"`
}

func (p VehicleQuoteRequestParams) DateRange() (rules.DateRange, error) {
	pickup, err := rules.ParseDate(p.PickupDate)
	if err != nil {
		return rules.DateRange{}, err
	}

	dropoff, err := rules.ParseDate(p.DropoffDate)
	if err != nil {
		return rules.DateRange{}, err
	}

	return rules.DateRange{Pickup: pickup, Dropoff: dropoff}, nil
}

type QuoteRequestParams struct {
	PricePerDay float64             `json:"pricePerDay" binding:"gt=0"`
	PickupDate  *openapi_types.Date `json:"pickupDate"`
	DropoffDate *openapi_types.Date `json:"dropoffDate"`
}

func (p QuoteRequestParams) DateRange() rules.DateRange {
	return rules.DateRange{
		Pickup:  rules.DateOf(converting.Unwrap(p.PickupDate).Time),
		Dropoff: rules.DateOf(converting.Unwrap(p.DropoffDate).Time),
	}
}

type QuoteResponse struct {
	VehicleID   int          `json:"vehicleId,omitempty"`
	Computable  bool         `json:"computable"`
	Days        int          `json:"days"`
	PricePerDay RoundedFloat `json:"pricePerDay"`
	Total       RoundedFloat `json:"total"`
}

func NewQuoteResponse(vehicleID int, result rules.PricingResult) QuoteResponse {
	return QuoteResponse{
		VehicleID:   vehicleID,
		Computable:  result.Computable(),
		Days:        result.Days,
		PricePerDay: RoundedFloat(result.PricePerDay),
		Total:       RoundedFloat(result.Total),
	}
}

type BookingRequestParams = booking.Request

type BookingResponse struct {
	Summary booking.Summary `json:"summary"`
}

type BookingsRequestParams struct {
	Status string `form:"status"`
}

type BookingsResponse struct {
	Bookings []booking.Booking `json:"bookings"`
	Count    int               `json:"count"`
}

type BookingStatusRequestParams struct {
	Status string `json:"status" binding:"required"`
}

type BookingStatusResponse struct {
	ID     int            `json:"id"`
	Status booking.Status `json:"status"`
}

type SessionRequestParams = session.State
