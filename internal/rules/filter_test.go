package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalogFixture() []Vehicle {
	return []Vehicle{
		{ID: 1, Name: "Toyota Corolla", Category: "Berline", Seats: 5, PricePerDay: 25000, HasAC: true, Available: true},
		{ID: 2, Name: "Toyota RAV4", Category: "SUV 5 places", Seats: 5, PricePerDay: 50000, HasAC: true, HasRearCamera: true, Is4x4: true, Available: true},
		{ID: 3, Name: "Toyota Prado", Category: "SUV 7 places", Seats: 7, PricePerDay: 80000, HasAC: true, HasTouchScreen: true, Is4x4: true},
		{ID: 4, Name: "Toyota Hilux", Category: "Pickup", Seats: 5, PricePerDay: 60000, Is4x4: true, Available: true},
		{ID: 5, Name: "Mercedes Classe E", Category: "Premium", Seats: 5, PricePerDay: 120000, HasAC: true, HasRearCamera: true, HasTouchScreen: true, Available: true},
		{ID: 6, Name: "Suzuki Jimny", Category: "SUV", Seats: 4, PricePerDay: 35000, Is4x4: true, Available: true},
	}
}

func ids(vehicles []Vehicle) []int {
	result := []int{}
	for _, vehicle := range vehicles {
		result = append(result, vehicle.ID)
	}
	return result
}

func float(v float64) *float64 {
	return &v
}

func TestFilter(t *testing.T) {
	destinations := DefaultDestinationSet(UnknownUnconstrained)

	tests := []struct {
		name     string
		criteria FilterCriteria
		expected []int
	}{
		{"no criteria", FilterCriteria{}, []int{1, 2, 3, 4, 5, 6}},
		{"exact category", FilterCriteria{Category: "Pickup"}, []int{4}},
		{"category case insensitive", FilterCriteria{Category: "berline"}, []int{1}},
		{"category filter contained in vehicle", FilterCriteria{Category: "SUV"}, []int{2, 3, 6}},
		{"vehicle category contained in filter", FilterCriteria{Category: "SUV 5 places"}, []int{2, 6}},
		{"seats", FilterCriteria{Seats: 7}, []int{3}},
		{"4x4 destination", FilterCriteria{Destination: "Bamenda"}, []int{2, 3, 4, 6}},
		{"flexible destination", FilterCriteria{Destination: "Douala"}, []int{1, 2, 3, 4, 5, 6}},
		{"unknown destination is unconstrained", FilterCriteria{Destination: "Garoua"}, []int{1, 2, 3, 4, 5, 6}},
		{"air conditioning", FilterCriteria{RequireAC: true}, []int{1, 2, 3, 5}},
		{"rear camera", FilterCriteria{RequireRearCamera: true}, []int{2, 5}},
		{"touch screen", FilterCriteria{RequireTouchScreen: true}, []int{3, 5}},
		{"4x4 flag", FilterCriteria{Require4x4: true}, []int{2, 3, 4, 6}},
		{"available only", FilterCriteria{AvailableOnly: true}, []int{1, 2, 4, 5, 6}},
		{"price range inclusive", FilterCriteria{PriceMin: float(35000), PriceMax: float(60000)}, []int{2, 4, 6}},
		{"price upper bound only", FilterCriteria{PriceMax: float(30000)}, []int{1}},
		{"conjunction", FilterCriteria{Seats: 5, Destination: "Bamenda", RequireAC: true}, []int{2}},
		{"no matches is not an error", FilterCriteria{Seats: 2}, []int{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ids(Filter(catalogFixture(), test.criteria, destinations)))
		})
	}
}

func TestFilterBamendaScenario(t *testing.T) {
	destinations := DefaultDestinationSet(UnknownUnconstrained)
	criteria := FilterCriteria{Seats: 5, Destination: "Bamenda"}
	vehicle := Vehicle{ID: 1, Seats: 5, Category: "SUV 5 places", Is4x4: true, PricePerDay: 50000}

	assert.Len(t, Filter([]Vehicle{vehicle}, criteria, destinations), 1)

	vehicle.Is4x4 = false
	assert.Empty(t, Filter([]Vehicle{vehicle}, criteria, destinations))
}

func TestFilterUnsetDestination(t *testing.T) {
	destinations := DefaultDestinationSet(UnknownRejected)
	vehicles := []Vehicle{{ID: 1, Is4x4: true}, {ID: 2}}

	assert.Equal(t, []int{1, 2}, ids(Filter(vehicles, FilterCriteria{Destination: ""}, destinations)))
}

func TestFilterRejectedUnknownDestination(t *testing.T) {
	destinations := DefaultDestinationSet(UnknownRejected)

	assert.Empty(t, Filter(catalogFixture(), FilterCriteria{Destination: "Garoua"}, destinations))
}

func TestFilterEmptyVehicleCategoryMatchesAnyCategory(t *testing.T) {
	vehicles := []Vehicle{{ID: 1, Category: ""}, {ID: 2, Category: "Premium"}}

	assert.Equal(t, []int{1}, ids(Filter(vehicles, FilterCriteria{Category: "Berline"}, nil)))
}

func TestFilterProperties(t *testing.T) {
	destinations := DefaultDestinationSet(UnknownUnconstrained)
	catalog := catalogFixture()
	criteriaList := []FilterCriteria{
		{},
		{Category: "SUV"},
		{Destination: "Buea", RequireAC: true},
		{Seats: 5, PriceMax: float(60000)},
		{Require4x4: true, AvailableOnly: true},
	}

	for _, criteria := range criteriaList {
		filtered := Filter(catalog, criteria, destinations)

		t.Run("subsequence preserving order", func(t *testing.T) {
			next := 0
			for _, vehicle := range filtered {
				found := false
				for next < len(catalog) {
					if catalog[next].ID == vehicle.ID {
						found = true
						next++
						break
					}
					next++
				}
				assert.True(t, found, "vehicle %d out of order", vehicle.ID)
			}
		})

		t.Run("idempotent", func(t *testing.T) {
			assert.Equal(t, filtered, Filter(filtered, criteria, destinations))
		})
	}

	assert.Equal(t, catalogFixture(), catalog, "input must not be modified")
}

func TestFilterCriteriaValidate(t *testing.T) {
	assert.NoError(t, FilterCriteria{}.Validate())
	assert.NoError(t, FilterCriteria{PriceMin: float(0), PriceMax: float(0)}.Validate())
	assert.ErrorIs(t, FilterCriteria{Seats: -1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, FilterCriteria{PriceMin: float(-5)}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, FilterCriteria{PriceMax: float(-5)}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, FilterCriteria{PriceMin: float(10), PriceMax: float(5)}.Validate(), ErrInvalidInput)
}

func TestApplyDestination(t *testing.T) {
	destinations := DefaultDestinationSet(UnknownUnconstrained)

	applied := ApplyDestination(FilterCriteria{Destination: "Bertoua"}, destinations)
	assert.True(t, applied.Require4x4)

	applied = ApplyDestination(FilterCriteria{Destination: "Kribi"}, destinations)
	assert.False(t, applied.Require4x4)

	applied = ApplyDestination(FilterCriteria{Destination: "Kribi", Require4x4: true}, destinations)
	assert.True(t, applied.Require4x4, "previous value is kept for flexible destinations")
}

func TestSimilar(t *testing.T) {
	vehicles := []Vehicle{
		{ID: 1, Category: "SUV"},
		{ID: 2, Category: "Berline"},
		{ID: 3, Category: "SUV"},
		{ID: 4, Category: "SUV"},
		{ID: 5, Category: "SUV"},
		{ID: 6, Category: "SUV"},
	}

	assert.Equal(t, []int{3, 4, 5}, ids(Similar(vehicles, vehicles[0], 3)))
	assert.Equal(t, []int{1, 3, 4, 5, 6}, ids(Similar(vehicles, Vehicle{ID: 9, Category: "SUV"}, 0)))
	assert.Empty(t, Similar(vehicles, vehicles[1], 3))
}
