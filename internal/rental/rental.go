package rental

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bitbucket.org/crgw/rental-hub/internal/booking"
	"bitbucket.org/crgw/rental-hub/internal/catalog"
	"bitbucket.org/crgw/rental-hub/internal/rental/errors"
	"bitbucket.org/crgw/rental-hub/internal/rental/factory"
	"bitbucket.org/crgw/rental-hub/internal/rental/middleware"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/schema"
	"bitbucket.org/crgw/rental-hub/internal/tools/responding"
	"bitbucket.org/crgw/rental-hub/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SimilarVehiclesLimit is how many alternatives the detail page shows.
const SimilarVehiclesLimit = 3

func handleFailure(ctx *gin.Context, message string, err error) {
	responding.HandleError(ctx, errors.StatusCode(err), message, err)
}

func idParam(ctx *gin.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Params.ByName("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errors.ErrorInvalidID, ctx.Params.ByName("id"))
	}

	return id, nil
}

func RegisterRoutes(router *gin.Engine, factory *factory.Factory) {
	destinations := factory.Destinations()

	router.GET("/destinations",
		middleware.TapLogger("destinations"),
		func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, schema.DestinationsResponse{
				Flexible:      destinations.Flexible(),
				FourByFour:    destinations.FourByFour(),
				UnknownPolicy: string(destinations.Policy()),
			})
		},
	)

	registerVehicleRoutes(router, factory)
	registerBookingRoutes(router, factory)
	registerSessionRoutes(router, factory)
	registerAdminRoutes(router, factory)
}

// searchVehicles runs the catalog through the filter after checking the
// criteria and the destination policy.
func searchVehicles(ctx *gin.Context, factory *factory.Factory, criteria rules.FilterCriteria) (schema.VehiclesResponse, error) {
	destinations := factory.Destinations()

	if err := criteria.Validate(); err != nil {
		return schema.VehiclesResponse{}, err
	}
	if err := destinations.Validate(criteria.Destination); err != nil {
		return schema.VehiclesResponse{}, err
	}

	logger := ctx.MustGet("logger").(*zerolog.Logger)
	slowLog := slowlog.CreateLogger(logger)

	var vehicles []rules.Vehicle
	err := slowlog.Measure(slowLog, "catalog:list-vehicles", func() (err error) {
		vehicles, err = factory.Catalog().ListVehicles(ctx.Request.Context())
		return err
	})
	if err != nil {
		return schema.VehiclesResponse{}, err
	}

	criteria = rules.ApplyDestination(criteria, destinations)
	filtered := rules.Filter(vehicles, criteria, destinations)

	logger.Debug().
		Int("catalogSize", len(vehicles)).
		Int("matches", len(filtered)).
		Msg("vehicles filtered")

	return schema.VehiclesResponse{
		Vehicles:    filtered,
		Count:       len(filtered),
		Criteria:    criteria,
		Destination: schema.NewDestinationInfo(criteria.Destination, destinations),
	}, nil
}

func registerVehicleRoutes(router *gin.Engine, factory *factory.Factory) {
	group := router.Group("/vehicles")

	group.GET("",
		middleware.TapLogger("list-vehicles"),
		middleware.PrepareParams(schema.VehiclesRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.VehiclesRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			response, err := searchVehicles(ctx, factory, params.Criteria())
			if err != nil {
				handleFailure(ctx, "Failed searching vehicles", err)
				return
			}

			ctx.JSON(http.StatusOK, response.Truncate(params.Limit))
		},
	)

	group.GET("/:id",
		middleware.TapLogger("get-vehicle"),
		func(ctx *gin.Context) {
			id, err := idParam(ctx)
			if err != nil {
				handleFailure(ctx, "Bad vehicle id", err)
				return
			}

			logger := ctx.MustGet("logger").(*zerolog.Logger)

			vehicle, err := factory.Catalog().GetVehicle(ctx.Request.Context(), id)
			if err != nil {
				handleFailure(ctx, "Failed requesting vehicle", err)
				return
			}

			similar := []rules.Vehicle{}
			vehicles, err := factory.Catalog().ListVehicles(ctx.Request.Context())
			if err != nil {
				logger.Warn().Err(err).Msg("similar vehicles unavailable")
			} else {
				similar = rules.Similar(vehicles, vehicle, SimilarVehiclesLimit)
			}

			ctx.JSON(http.StatusOK, schema.VehicleResponse{
				Vehicle: vehicle,
				Similar: similar,
			})
		},
	)

	group.GET("/:id/quote",
		middleware.TapLogger("quote-vehicle"),
		middleware.PrepareParams(schema.VehicleQuoteRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.VehicleQuoteRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			id, err := idParam(ctx)
			if err != nil {
				handleFailure(ctx, "Bad vehicle id", err)
				return
			}

			dates, err := params.DateRange()
			if err != nil {
				handleFailure(ctx, "Bad rental dates", err)
				return
			}

			vehicle, err := factory.Catalog().GetVehicle(ctx.Request.Context(), id)
			if err != nil {
				handleFailure(ctx, "Failed requesting vehicle", err)
				return
			}

			result, err := rules.Quote(vehicle.PricePerDay, dates)
			if err != nil {
				handleFailure(ctx, "Failed pricing rental", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.NewQuoteResponse(vehicle.ID, result))
		},
	)

	router.POST("/quote",
		middleware.TapLogger("quote"),
		middleware.PrepareParams(schema.QuoteRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.QuoteRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			result, err := rules.Quote(params.PricePerDay, params.DateRange())
			if err != nil {
				handleFailure(ctx, "Failed pricing rental", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.NewQuoteResponse(0, result))
		},
	)
}

func registerBookingRoutes(router *gin.Engine, factory *factory.Factory) {
	router.POST("/bookings",
		middleware.TapLogger("create-booking"),
		middleware.PrepareParams(schema.BookingRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.BookingRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			request := *params
			request.Normalize()
			if err := request.Validate(); err != nil {
				handleFailure(ctx, "Invalid booking request", err)
				return
			}

			destinations := factory.Destinations()
			if err := destinations.Validate(request.Destination); err != nil {
				handleFailure(ctx, "Invalid booking request", err)
				return
			}

			logger := ctx.MustGet("logger").(*zerolog.Logger)
			slowLog := slowlog.CreateLogger(logger)
			slowLog.Start("booking")
			defer slowLog.Stop("booking")

			vehicle, err := factory.Catalog().GetVehicle(ctx.Request.Context(), request.VehicleID)
			if err != nil {
				handleFailure(ctx, "Failed requesting vehicle", err)
				return
			}

			if !destinations.IsVehicleEligibleForDestination(vehicle, request.Destination) {
				handleFailure(ctx, "Vehicle cannot travel to destination",
					fmt.Errorf("%w: %s requires a 4x4 vehicle", rules.ErrInvalidInput, request.Destination))
				return
			}
			if !vehicle.Available {
				handleFailure(ctx, "Vehicle is not available", catalog.ErrVehicleUnavailable)
				return
			}

			pricing, err := rules.Quote(vehicle.PricePerDay, request.DateRange())
			if err != nil {
				handleFailure(ctx, "Failed pricing rental", err)
				return
			}

			bookingID, err := factory.Catalog().CreateBooking(ctx.Request.Context(), request, pricing)
			if err != nil {
				handleFailure(ctx, "Failed creating booking", err)
				return
			}

			summary := booking.NewSummary(request, vehicle, pricing, bookingID)
			logger.Info().
				Str("bookingReference", summary.Reference).
				Int("vehicleId", vehicle.ID).
				Int("days", pricing.Days).
				Float64("total", pricing.Total).
				Msg("booking created")

			ctx.JSON(http.StatusCreated, schema.BookingResponse{Summary: summary})
		},
	)
}

func registerSessionRoutes(router *gin.Engine, factory *factory.Factory) {
	group := router.Group("/sessions")

	group.POST("",
		middleware.TapLogger("create-session"),
		middleware.PrepareParams(schema.SessionRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.SessionRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			if err := factory.Destinations().Validate(params.Criteria.Destination); err != nil {
				handleFailure(ctx, "Invalid search", err)
				return
			}

			created, err := factory.Sessions().Create(ctx.Request.Context(), *params)
			if err != nil {
				handleFailure(ctx, "Failed creating session", err)
				return
			}

			ctx.JSON(http.StatusCreated, created)
		},
	)

	group.GET("/:id",
		middleware.TapLogger("get-session"),
		func(ctx *gin.Context) {
			found, err := factory.Sessions().Get(ctx.Request.Context(), ctx.Params.ByName("id"))
			if err != nil {
				handleFailure(ctx, "Failed requesting session", err)
				return
			}

			ctx.JSON(http.StatusOK, found)
		},
	)

	group.PUT("/:id",
		middleware.TapLogger("update-session"),
		middleware.PrepareParams(schema.SessionRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.SessionRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			if err := factory.Destinations().Validate(params.Criteria.Destination); err != nil {
				handleFailure(ctx, "Invalid search", err)
				return
			}

			updated, err := factory.Sessions().Update(ctx.Request.Context(), ctx.Params.ByName("id"), *params)
			if err != nil {
				handleFailure(ctx, "Failed updating session", err)
				return
			}

			ctx.JSON(http.StatusOK, updated)
		},
	)

	group.DELETE("/:id",
		middleware.TapLogger("delete-session"),
		func(ctx *gin.Context) {
			if err := factory.Sessions().Delete(ctx.Request.Context(), ctx.Params.ByName("id")); err != nil {
				handleFailure(ctx, "Failed deleting session", err)
				return
			}

			ctx.Status(http.StatusNoContent)
		},
	)

	group.GET("/:id/vehicles",
		middleware.TapLogger("session-vehicles"),
		func(ctx *gin.Context) {
			found, err := factory.Sessions().Get(ctx.Request.Context(), ctx.Params.ByName("id"))
			if err != nil {
				handleFailure(ctx, "Failed requesting session", err)
				return
			}

			response, err := searchVehicles(ctx, factory, found.Criteria)
			if err != nil {
				handleFailure(ctx, "Failed searching vehicles", err)
				return
			}

			ctx.JSON(http.StatusOK, response)
		},
	)
}

func registerAdminRoutes(router *gin.Engine, factory *factory.Factory) {
	group := router.Group("/admin",
		middleware.PrepareAdmin(factory.AdminSecret()),
	)

	group.GET("/bookings",
		middleware.TapLogger("list-bookings"),
		middleware.PrepareParams(schema.BookingsRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.BookingsRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			upstreamStatus := ""
			if params.Status != "" && !strings.EqualFold(params.Status, booking.StatusAll) {
				status, err := booking.ParseStatus(params.Status)
				if err != nil {
					handleFailure(ctx, "Bad booking status", err)
					return
				}
				upstreamStatus = string(status)
			}

			token := ctx.MustGet(middleware.AdminTokenKey).(string)
			bookings, err := factory.Catalog().ListBookings(ctx.Request.Context(), token, upstreamStatus)
			if err != nil {
				handleFailure(ctx, "Failed requesting bookings", err)
				return
			}

			filtered, err := booking.FilterByStatus(bookings, upstreamStatus)
			if err != nil {
				handleFailure(ctx, "Bad booking status", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.BookingsResponse{
				Bookings: filtered,
				Count:    len(filtered),
			})
		},
	)

	group.PUT("/bookings/:id/status",
		middleware.TapLogger("update-booking-status"),
		middleware.PrepareParams(schema.BookingStatusRequestParams{}),
		func(ctx *gin.Context) {
			params, ok := ctx.MustGet(middleware.ParamsKey).(*schema.BookingStatusRequestParams)
			if !ok {
				responding.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			id, err := idParam(ctx)
			if err != nil {
				handleFailure(ctx, "Bad booking id", err)
				return
			}

			status, err := booking.ParseStatus(params.Status)
			if err != nil {
				handleFailure(ctx, "Bad booking status", err)
				return
			}

			token := ctx.MustGet(middleware.AdminTokenKey).(string)
			if err := factory.Catalog().UpdateBookingStatus(ctx.Request.Context(), token, id, status); err != nil {
				handleFailure(ctx, "Failed updating booking status", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.BookingStatusResponse{ID: id, Status: status})
		},
	)

	group.POST("/bookings/:id/cancel",
		middleware.TapLogger("cancel-booking"),
		func(ctx *gin.Context) {
			id, err := idParam(ctx)
			if err != nil {
				handleFailure(ctx, "Bad booking id", err)
				return
			}

			token := ctx.MustGet(middleware.AdminTokenKey).(string)
			if err := factory.Catalog().CancelBooking(ctx.Request.Context(), token, id); err != nil {
				handleFailure(ctx, "Failed cancelling booking", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.BookingStatusResponse{ID: id, Status: booking.StatusCancelled})
		},
	)

	group.POST("/bookings/:id/validate",
		middleware.TapLogger("validate-booking"),
		func(ctx *gin.Context) {
			id, err := idParam(ctx)
			if err != nil {
				handleFailure(ctx, "Bad booking id", err)
				return
			}

			token := ctx.MustGet(middleware.AdminTokenKey).(string)
			if err := factory.Catalog().ValidateBooking(ctx.Request.Context(), token, id); err != nil {
				handleFailure(ctx, "Failed validating booking", err)
				return
			}

			ctx.JSON(http.StatusOK, schema.BookingStatusResponse{ID: id, Status: booking.StatusActive})
		},
	)
}
