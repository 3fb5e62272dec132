package rules

import (
	"fmt"
	"strings"
)

// FilterCriteria is built from the search form. Zero values impose no
// constraint. Feature requirements are one-directional: a feature can be
// required, never excluded.
type FilterCriteria struct {
	Category           string   `json:"category,omitempty"`
	Seats              int      `json:"seats,omitempty"`
	Destination        string   `json:"destination,omitempty"`
	RequireAC          bool     `json:"hasAC,omitempty"`
	RequireRearCamera  bool     `json:"hasRearCamera,omitempty"`
	RequireTouchScreen bool     `json:"hasTouchScreen,omitempty"`
	Require4x4         bool     `json:"is4x4,omitempty"`
	AvailableOnly      bool     `json:"availableOnly,omitempty"`
	PriceMin           *float64 `json:"priceMin,omitempty"`
	PriceMax           *float64 `json:"priceMax,omitempty"`
}

// Validate checks shape only. Destination membership is checked by
// DestinationSet.Validate.
func (c FilterCriteria) Validate() error {
	if c.Seats < 0 {
		return fmt.Errorf("%w: seats must be positive", ErrInvalidInput)
	}
	if c.PriceMin != nil && *c.PriceMin < 0 {
		return fmt.Errorf("%w: priceMin must not be negative", ErrInvalidInput)
	}
	if c.PriceMax != nil && *c.PriceMax < 0 {
		return fmt.Errorf("%w: priceMax must not be negative", ErrInvalidInput)
	}
	if c.PriceMin != nil && c.PriceMax != nil && *c.PriceMin > *c.PriceMax {
		return fmt.Errorf("%w: priceMin is greater than priceMax", ErrInvalidInput)
	}

	return nil
}

// Filter returns the vehicles matching every active criterion, in catalog
// order. The input slice is not modified.
func Filter(vehicles []Vehicle, criteria FilterCriteria, destinations *DestinationSet) []Vehicle {
	filtered := make([]Vehicle, 0, len(vehicles))
	for _, vehicle := range vehicles {
		if Matches(vehicle, criteria, destinations) {
			filtered = append(filtered, vehicle)
		}
	}

	return filtered
}

func Matches(vehicle Vehicle, criteria FilterCriteria, destinations *DestinationSet) bool {
	if criteria.Category != "" && !categoryMatches(vehicle.Category, criteria.Category) {
		return false
	}

	if criteria.Seats > 0 && vehicle.Seats != criteria.Seats {
		return false
	}

	if criteria.Destination != "" && destinations != nil &&
		!destinations.IsVehicleEligibleForDestination(vehicle, criteria.Destination) {
		return false
	}

	if criteria.RequireAC && !vehicle.HasAC {
		return false
	}
	if criteria.RequireRearCamera && !vehicle.HasRearCamera {
		return false
	}
	if criteria.RequireTouchScreen && !vehicle.HasTouchScreen {
		return false
	}
	if criteria.Require4x4 && !vehicle.Is4x4 {
		return false
	}
	if criteria.AvailableOnly && !vehicle.Available {
		return false
	}

	if criteria.PriceMin != nil && vehicle.PricePerDay < *criteria.PriceMin {
		return false
	}
	if criteria.PriceMax != nil && vehicle.PricePerDay > *criteria.PriceMax {
		return false
	}

	return true
}

// categoryMatches accepts containment in either direction, so "SUV" matches
// "SUV 5 places" and "SUV 7 places" matches "SUV". An empty vehicle category
// is contained in every filter value.
func categoryMatches(vehicleCategory, filterCategory string) bool {
	v := normalizeName(vehicleCategory)
	f := normalizeName(filterCategory)

	return strings.Contains(v, f) || strings.Contains(f, v)
}

// ApplyDestination couples the destination choice to the 4x4 requirement.
// The flag is switched on for 4x4-required destinations and otherwise kept
// as the caller left it.
func ApplyDestination(criteria FilterCriteria, destinations *DestinationSet) FilterCriteria {
	if destinations != nil && destinations.RequiresFourByFour(criteria.Destination) {
		criteria.Require4x4 = true
	}

	return criteria
}

// Similar lists other vehicles of the same category in catalog order.
func Similar(vehicles []Vehicle, vehicle Vehicle, limit int) []Vehicle {
	similar := []Vehicle{}
	for _, candidate := range vehicles {
		if limit > 0 && len(similar) == limit {
			break
		}
		if candidate.ID == vehicle.ID || candidate.Category != vehicle.Category {
			continue
		}
		similar = append(similar, candidate)
	}

	return similar
}
