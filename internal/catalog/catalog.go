package catalog

import (
	"bytes"
	"context"
	jsonEncoding "encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bitbucket.org/crgw/rental-hub/internal/booking"
	"bitbucket.org/crgw/rental-hub/internal/catalog/json"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/schema"
	"bitbucket.org/crgw/rental-hub/internal/tools/client"
	"bitbucket.org/crgw/rental-hub/internal/tools/requesting"
	"github.com/google/go-querystring/query"
	"github.com/oapi-codegen/runtime"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound           = errors.New("not found in catalog")
	ErrVehicleUnavailable = errors.New("vehicle is not available for the selected dates")
	ErrUnauthorized       = errors.New("catalog rejected the credentials")
)

// Client calls the external catalog and booking service. Every method makes
// exactly one attempt.
type Client struct {
	options *client.Options
	http    *http.Client
}

func New(logger *zerolog.Logger, optionFuncs ...client.OptionFunc) (*Client, error) {
	options, err := client.NewOptions(optionFuncs...)
	if err != nil {
		return nil, err
	}

	return &Client{
		options: options,
		http: &http.Client{
			Timeout: options.Timeout(),
			Transport: &requesting.InterceptorTransport{
				Middlewares: []requesting.TransportMiddleware{
					requesting.NewHeaderTransportMiddleware(map[string]string{
						"Accept":     "application/json",
						"User-Agent": options.Name(),
					}),
					requesting.NewLoggingTransportMiddleware(logger, "catalog"),
				},
			},
		},
	}, nil
}

func (c *Client) ListVehicles(ctx context.Context) ([]rules.Vehicle, error) {
	var cars []json.CarRS
	if err := c.do(ctx, schema.ListVehicles, http.MethodGet, "/cars", "", nil, &cars); err != nil {
		return nil, err
	}

	vehicles := make([]rules.Vehicle, 0, len(cars))
	for _, car := range cars {
		vehicles = append(vehicles, car.Vehicle())
	}

	return vehicles, nil
}

func (c *Client) GetVehicle(ctx context.Context, id int) (rules.Vehicle, error) {
	path, err := idPath("/cars/%s", id)
	if err != nil {
		return rules.Vehicle{}, err
	}

	var car json.CarRS
	if err := c.do(ctx, schema.GetVehicle, http.MethodGet, path, "", nil, &car); err != nil {
		return rules.Vehicle{}, err
	}

	return car.Vehicle(), nil
}

// CreateBooking forwards the booking and returns the id the service assigned,
// or zero when it did not return one.
func (c *Client) CreateBooking(ctx context.Context, request booking.Request, pricing rules.PricingResult) (int, error) {
	var created json.BookingRS
	err := c.do(ctx, schema.CreateBooking, http.MethodPost, "/bookings", "", json.NewBookingRQ(request, pricing), &created)
	if err != nil {
		var upstreamErr *schema.UpstreamResponseError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == http.StatusBadRequest {
			return 0, fmt.Errorf("%w: %s", ErrVehicleUnavailable, upstreamErr.Message)
		}
		return 0, err
	}

	return created.ID.Int(), nil
}

func (c *Client) ListBookings(ctx context.Context, token string, status string) ([]booking.Booking, error) {
	path := "/bookings"
	values, err := query.Values(json.BookingsRQ{Status: status})
	if err != nil {
		return nil, err
	}
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var listed []json.BookingRS
	if err := c.do(ctx, schema.ListBookings, http.MethodGet, path, token, nil, &listed); err != nil {
		return nil, err
	}

	bookings := make([]booking.Booking, 0, len(listed))
	for _, b := range listed {
		bookings = append(bookings, b.Booking())
	}

	return bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id int, status booking.Status) error {
	path, err := idPath("/bookings/%s/status", id)
	if err != nil {
		return err
	}

	return c.do(ctx, schema.UpdateBookingStatus, http.MethodPut, path, token, json.BookingStatusRQ{Status: string(status)}, nil)
}

func (c *Client) CancelBooking(ctx context.Context, token string, id int) error {
	path, err := idPath("/bookings/%s/cancel", id)
	if err != nil {
		return err
	}

	return c.do(ctx, schema.CancelBooking, http.MethodPost, path, token, json.BookingActionRQ{BookingID: id}, nil)
}

func (c *Client) ValidateBooking(ctx context.Context, token string, id int) error {
	path, err := idPath("/bookings/%s/validate", id)
	if err != nil {
		return err
	}

	return c.do(ctx, schema.ValidateBooking, http.MethodPost, path, token, json.BookingActionRQ{BookingID: id}, nil)
}

func idPath(format string, id int) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(format, param), nil
}

func (c *Client) do(
	ctx context.Context,
	requestName schema.CatalogRequestName,
	method string,
	path string,
	token string,
	payload interface{},
	result interface{},
) error {
	body := io.Reader(http.NoBody)
	if payload != nil {
		encoded, err := jsonEncoding.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, requestName)
	httpRequest, err := http.NewRequestWithContext(ctx, method, c.options.BaseURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+token)
	}

	rs, upstreamErr := requesting.RequestErrors(c.http.Do(httpRequest))
	if upstreamErr != nil {
		switch upstreamErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, upstreamErr.Message)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, upstreamErr.Message)
		}
		return upstreamErr
	}
	defer rs.Body.Close()

	if result == nil {
		return nil
	}

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return schema.NewConnectionError(err.Error())
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := jsonEncoding.Unmarshal(bodyBytes, result); err != nil {
		return schema.NewDecodingError(err.Error())
	}

	return nil
}
