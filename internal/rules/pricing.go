package rules

import "fmt"

// PricingResult is recomputed on every date change and never persisted.
type PricingResult struct {
	Days        int     `json:"days"`
	PricePerDay float64 `json:"pricePerDay"`
	Total       float64 `json:"total"`
}

// Computable is false while either date is missing. Zero days is never a
// valid rental.
func (p PricingResult) Computable() bool {
	return p.Days > 0
}

// DurationDays counts billable days, both pickup and dropoff included. It
// returns 0 when a date is absent and ErrInvalidDateRange when the range is
// inverted.
func DurationDays(pickup, dropoff Date) (int, error) {
	if pickup.IsZero() || dropoff.IsZero() {
		return 0, nil
	}
	if dropoff.Before(pickup) {
		return 0, fmt.Errorf("%w: %s to %s", ErrInvalidDateRange, pickup, dropoff)
	}

	return int(dropoff.epochDay()-pickup.epochDay()) + 1, nil
}

func TotalPrice(pricePerDay float64, pickup, dropoff Date) (float64, error) {
	days, err := DurationDays(pickup, dropoff)
	if err != nil {
		return 0, err
	}

	return pricePerDay * float64(days), nil
}

func Quote(pricePerDay float64, dates DateRange) (PricingResult, error) {
	if pricePerDay < 0 {
		return PricingResult{}, fmt.Errorf("%w: negative price per day", ErrInvalidInput)
	}

	days, err := DurationDays(dates.Pickup, dates.Dropoff)
	if err != nil {
		return PricingResult{}, err
	}

	return PricingResult{
		Days:        days,
		PricePerDay: pricePerDay,
		Total:       pricePerDay * float64(days),
	}, nil
}
