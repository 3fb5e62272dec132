package json

import (
	"strings"

	"bitbucket.org/crgw/rental-hub/internal/rules"
)

// CarRS is a car as returned by GET /cars and GET /cars/{id}.
type CarRS struct {
	ID             Integer  `json:"id"`
	Name           string   `json:"name"`
	CarType        string   `json:"carType"`
	Category       string   `json:"category"`
	Seats          Integer  `json:"seats"`
	Transmission   string   `json:"transmission"`
	FuelType       string   `json:"fuelType"`
	PricePerDay    Number   `json:"pricePerDay"`
	HasAC          bool     `json:"hasAC"`
	HasRearCamera  bool     `json:"hasRearCamera"`
	HasTouchScreen bool     `json:"hasTouchScreen"`
	Is4x4          bool     `json:"is4x4"`
	IsAvailable    *bool    `json:"isAvailable"`
	ImageURL       string   `json:"imageUrl"`
	Images         []string `json:"images"`
	Description    string   `json:"description"`
}

// Vehicle maps the record. The search page filters on carType, older records
// only carry category. A car without an availability flag is treated as
// available.
func (c CarRS) Vehicle() rules.Vehicle {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	category := strings.TrimSpace(c.CarType)
	if category == "" {
		category = strings.TrimSpace(c.Category)
	}

	return rules.Vehicle{
		ID:             c.ID.Int(),
		Name:           c.Name,
		Category:       category,
		Seats:          c.Seats.Int(),
		Transmission:   c.Transmission,
		FuelType:       c.FuelType,
		PricePerDay:    c.PricePerDay.Float(),
		HasAC:          c.HasAC,
		HasRearCamera:  c.HasRearCamera,
		HasTouchScreen: c.HasTouchScreen,
		Is4x4:          c.Is4x4,
		Available:      available,
		ImageURL:       c.ImageURL,
		Images:         c.Images,
		Description:    c.Description,
	}
}
