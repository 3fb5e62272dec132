package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitbucket.org/crgw/rental-hub/internal/booking"
	"bitbucket.org/crgw/rental-hub/internal/catalog"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/schema"
	"bitbucket.org/crgw/rental-hub/internal/tools/client"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*catalog.Client, *bytes.Buffer) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	testServer := httptest.NewServer(handler)
	t.Cleanup(testServer.Close)

	c, err := catalog.New(&log, client.WithBaseURL(testServer.URL+"/api"), client.WithTimeout(200*time.Millisecond))
	require.NoError(t, err)

	return c, out
}

func defaultCarsResponse() string {
	return `[
		{"id": 1, "name": "Toyota Corolla", "category": "Berline", "seats": 5, "pricePerDay": "25000", "hasAC": true, "isAvailable": true},
		{"id": "2", "name": "Toyota RAV4", "category": "SUV", "seats": "5", "pricePerDay": 30000, "is4x4": true},
		{"id": 3, "name": "Hilux", "category": "Pickup", "seats": 4, "pricePerDay": 45000.5, "is4x4": true, "isAvailable": false}
	]`
}

func TestListVehicles(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cars", r.RequestURI)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "rental-hub", r.Header.Get("User-Agent"))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(defaultCarsResponse()))
	})

	vehicles, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 3)

	assert.Equal(t, rules.Vehicle{
		ID:          1,
		Name:        "Toyota Corolla",
		Category:    "Berline",
		Seats:       5,
		PricePerDay: 25000,
		HasAC:       true,
		Available:   true,
	}, vehicles[0])
	assert.Equal(t, 2, vehicles[1].ID)
	assert.Equal(t, 5, vehicles[1].Seats)
	assert.True(t, vehicles[1].Available)
	assert.Equal(t, 45000.5, vehicles[2].PricePerDay)
	assert.False(t, vehicles[2].Available)

	assert.Contains(t, out.String(), `"label":"outgoing-request"`)
	assert.Contains(t, out.String(), `"requestType":"list-vehicles"`)
}

func TestListVehiclesCarType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[
			{"id": 1, "name": "Hilux", "carType": "Pickup", "seats": 4, "pricePerDay": 45000, "is4x4": true},
			{"id": 2, "name": "Toyota Corolla", "carType": "Berline", "seats": 5, "pricePerDay": 25000},
			{"id": 3, "name": "Toyota RAV4", "carType": "", "category": "SUV", "seats": 5, "pricePerDay": 30000}
		]`))
	})

	vehicles, err := c.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 3)

	assert.Equal(t, "Pickup", vehicles[0].Category)
	assert.Equal(t, "Berline", vehicles[1].Category)
	assert.Equal(t, "SUV", vehicles[2].Category)

	destinations := rules.DefaultDestinationSet(rules.UnknownUnconstrained)
	filtered := rules.Filter(vehicles, rules.FilterCriteria{Category: "Berline"}, destinations)
	require.Len(t, filtered, 1)
	assert.Equal(t, 2, filtered[0].ID)
}

func TestListVehiclesRejectsFractionalIntegers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"fractional seats", `[{"id": 1, "name": "Hilux", "seats": "5.5", "pricePerDay": 45000}]`},
		{"fractional id", `[{"id": 1.5, "name": "Hilux", "seats": 5, "pricePerDay": 45000}]`},
		{"non numeric seats", `[{"id": 1, "name": "Hilux", "seats": "five", "pricePerDay": 45000}]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(test.body))
			})

			_, err := c.ListVehicles(context.Background())

			var upstreamErr *schema.UpstreamResponseError
			require.ErrorAs(t, err, &upstreamErr)
			assert.Equal(t, schema.DecodingError, upstreamErr.Code)
		})
	}
}

func TestGetVehicle(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.RequestURI {
		case "/api/cars/2":
			w.Write([]byte(`{"id": 2, "name": "Toyota RAV4", "category": "SUV", "seats": 5, "pricePerDay": 30000, "is4x4": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Car not found"}`))
		}
	})

	vehicle, err := c.GetVehicle(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Toyota RAV4", vehicle.Name)
	assert.True(t, vehicle.Is4x4)

	_, err = c.GetVehicle(context.Background(), 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Contains(t, err.Error(), "Car not found")
}

func validBookingRequest() booking.Request {
	request := booking.Request{
		VehicleID:      2,
		FirstName:      "Amina",
		LastName:       "Ngo",
		Email:          "amina@example.com",
		Phone:          "+237600000000",
		PickupQuarter:  "Akwa",
		PickupDate:     rules.MustParseDate("2024-03-10"),
		DropoffDate:    rules.MustParseDate("2024-03-12"),
		PaymentMethod:  booking.PaymentMobile,
		MobileOperator: booking.OperatorMTN,
		TermsAccepted:  true,
	}
	request.Normalize()

	return request
}

func TestCreateBooking(t *testing.T) {
	t.Run("should send the recomputed booking", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/bookings", r.RequestURI)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{
				"carId": 2,
				"firstName": "Amina",
				"lastName": "Ngo",
				"email": "amina@example.com",
				"phone": "+237600000000",
				"address": "Akwa",
				"pickupCity": "Douala",
				"dropoffCity": "Douala",
				"paymentMethod": "mobile_mtn",
				"startDate": "2024-03-10T00:00:00Z",
				"endDate": "2024-03-12T00:00:00Z",
				"totalPrice": 90000
			}`, string(body))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 17, "status": "pending"}`))
		})

		id, err := c.CreateBooking(context.Background(), validBookingRequest(), rules.PricingResult{Days: 3, PricePerDay: 30000, Total: 90000})
		require.NoError(t, err)
		assert.Equal(t, 17, id)
	})

	t.Run("should report unavailable vehicles", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "Car already booked"}`))
		})

		_, err := c.CreateBooking(context.Background(), validBookingRequest(), rules.PricingResult{})
		assert.ErrorIs(t, err, catalog.ErrVehicleUnavailable)
		assert.Contains(t, err.Error(), "Car already booked")
	})

	t.Run("should accept an empty body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		id, err := c.CreateBooking(context.Background(), validBookingRequest(), rules.PricingResult{})
		require.NoError(t, err)
		assert.Equal(t, 0, id)
	})

	t.Run("should surface server errors", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := c.CreateBooking(context.Background(), validBookingRequest(), rules.PricingResult{})
		var upstreamErr *schema.UpstreamResponseError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, schema.UpstreamError, upstreamErr.Code)
		assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
		assert.NotErrorIs(t, err, catalog.ErrVehicleUnavailable)
	})
}

func TestListBookings(t *testing.T) {
	c, out := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Invalid token"}`))
			return
		}

		assert.Equal(t, "/api/bookings?status=pending", r.RequestURI)
		w.Write([]byte(`[{
			"id": 5,
			"carId": 2,
			"firstName": "Amina",
			"lastName": "Ngo",
			"startDate": "2024-03-10T00:00:00.000Z",
			"endDate": "2024-03-12T00:00:00.000Z",
			"totalPrice": "90000",
			"status": "PENDING",
			"car": {"id": 2, "name": "Toyota RAV4", "pricePerDay": 30000}
		}]`))
	})

	bookings, err := c.ListBookings(context.Background(), "admin-token", "pending")
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	assert.Equal(t, 5, bookings[0].ID)
	assert.Equal(t, rules.MustParseDate("2024-03-10"), bookings[0].StartDate)
	assert.Equal(t, rules.MustParseDate("2024-03-12"), bookings[0].EndDate)
	assert.Equal(t, float64(90000), bookings[0].TotalPrice)
	assert.Equal(t, booking.StatusPending, bookings[0].Status)
	require.NotNil(t, bookings[0].Vehicle)
	assert.Equal(t, "Toyota RAV4", bookings[0].Vehicle.Name)
	assert.Contains(t, out.String(), `"requestType":"list-bookings"`)

	_, err = c.ListBookings(context.Background(), "wrong", "")
	assert.ErrorIs(t, err, catalog.ErrUnauthorized)
}

func TestBookingActions(t *testing.T) {
	type call struct {
		method string
		uri    string
		body   map[string]interface{}
	}
	calls := []call{}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		body := map[string]interface{}{}
		json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{r.Method, r.RequestURI, body})

		w.Write([]byte(`{"message": "ok"}`))
	})

	ctx := context.Background()
	require.NoError(t, c.UpdateBookingStatus(ctx, "admin-token", 7, booking.StatusActive))
	require.NoError(t, c.CancelBooking(ctx, "admin-token", 7))
	require.NoError(t, c.ValidateBooking(ctx, "admin-token", 7))

	assert.Equal(t, []call{
		{http.MethodPut, "/api/bookings/7/status", map[string]interface{}{"status": "active"}},
		{http.MethodPost, "/api/bookings/7/cancel", map[string]interface{}{"bookingId": float64(7)}},
		{http.MethodPost, "/api/bookings/7/validate", map[string]interface{}{"bookingId": float64(7)}},
	}, calls)
}

func TestUpstreamFailures(t *testing.T) {
	t.Run("should classify timeouts", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		})

		_, err := c.ListVehicles(context.Background())
		var upstreamErr *schema.UpstreamResponseError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, schema.TimeoutError, upstreamErr.Code)
	})

	t.Run("should classify undecodable bodies", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		})

		_, err := c.ListVehicles(context.Background())
		var upstreamErr *schema.UpstreamResponseError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, schema.DecodingError, upstreamErr.Code)
	})

	t.Run("should classify refused connections", func(t *testing.T) {
		log := zerolog.Nop()
		c, err := catalog.New(&log, client.WithBaseURL("http://127.0.0.1:1"))
		require.NoError(t, err)

		_, err = c.ListVehicles(context.Background())
		var upstreamErr *schema.UpstreamResponseError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, schema.ConnectionError, upstreamErr.Code)
	})

	t.Run("should require a base url", func(t *testing.T) {
		log := zerolog.Nop()
		_, err := catalog.New(&log)
		assert.ErrorIs(t, err, client.ErrMissingBaseURL)
	})
}
