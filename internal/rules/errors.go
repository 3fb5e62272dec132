package rules

import "errors"

var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrInvalidDateRange         = errors.New("dropoff date precedes pickup date")
	ErrUnknownDestination       = errors.New("unknown destination")
	ErrOverlappingDestination   = errors.New("destination listed as both flexible and 4x4 required")
	ErrUnknownDestinationPolicy = errors.New("unknown destination policy")
)
