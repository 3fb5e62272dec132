package rules

// Vehicle is a read-only catalog record. Values are supplied by the catalog
// service and never mutated here.
type Vehicle struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Seats          int      `json:"seats"`
	Transmission   string   `json:"transmission,omitempty"`
	FuelType       string   `json:"fuelType,omitempty"`
	PricePerDay    float64  `json:"pricePerDay"`
	HasAC          bool     `json:"hasAC"`
	HasRearCamera  bool     `json:"hasRearCamera"`
	HasTouchScreen bool     `json:"hasTouchScreen"`
	Is4x4          bool     `json:"is4x4"`
	Available      bool     `json:"isAvailable"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	Images         []string `json:"images,omitempty"`
	Description    string   `json:"description,omitempty"`
}
