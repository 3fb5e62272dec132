package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"bitbucket.org/crgw/rental-hub/internal/catalog"
	catalogJson "bitbucket.org/crgw/rental-hub/internal/catalog/json"
	"bitbucket.org/crgw/rental-hub/internal/config"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/schema"
	"bitbucket.org/crgw/rental-hub/internal/tools/client"
	"bitbucket.org/crgw/rental-hub/internal/tools/converting"
	"bitbucket.org/crgw/rental-hub/internal/tools/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	RootCmdName  = "rentalctl"
	RootCmdShort = "Run the rental rules offline"
	RootCmdLong  = "rentalctl filters a vehicle catalog, prices rentals and lists destinations with the same rules the rental hub serves."
	EnvPrefix    = "RENTALCTL"
)

// NewRootCmd builds the command tree. Every flag can also be set through a
// RENTALCTL_ environment variable, e.g. RENTALCTL_PRICE_MIN.
func NewRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           RootCmdName,
		Short:         RootCmdShort,
		Long:          RootCmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().String("destinations-file", "", "YAML file with flexible and fourByFour destination lists")
	rootCmd.PersistentFlags().String("unknown-policy", string(rules.UnknownUnconstrained), "unknown destination policy: unconstrained or reject")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level for catalog requests")
	v.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newFilterCmd(v),
		newQuoteCmd(v),
		newDestinationsCmd(v),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func destinationSet(v *viper.Viper) (*rules.DestinationSet, error) {
	return config.DestinationsConfig{
		File:          v.GetString("destinations-file"),
		UnknownPolicy: v.GetString("unknown-policy"),
	}.Destinations()
}

func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func newFilterCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter a catalog with search criteria",
		RunE: func(cmd *cobra.Command, args []string) error {
			destinations, err := destinationSet(v)
			if err != nil {
				return err
			}

			criteria := rules.FilterCriteria{
				Category:           v.GetString("category"),
				Seats:              v.GetInt("seats"),
				Destination:        v.GetString("destination"),
				RequireAC:          v.GetBool("ac"),
				RequireRearCamera:  v.GetBool("rear-camera"),
				RequireTouchScreen: v.GetBool("touch-screen"),
				Require4x4:         v.GetBool("four-by-four"),
				AvailableOnly:      v.GetBool("available-only"),
				PriceMin:           converting.PointerIfSet(v.GetFloat64("price-min"), v.IsSet("price-min")),
				PriceMax:           converting.PointerIfSet(v.GetFloat64("price-max"), v.IsSet("price-max")),
			}
			if err := criteria.Validate(); err != nil {
				return err
			}
			if err := destinations.Validate(criteria.Destination); err != nil {
				return err
			}

			vehicles, err := loadCatalog(cmd.Context(), v)
			if err != nil {
				return err
			}

			criteria = rules.ApplyDestination(criteria, destinations)
			filtered := rules.Filter(vehicles, criteria, destinations)

			if v.GetInt("limit") < 0 {
				return fmt.Errorf("%w: limit must not be negative", rules.ErrInvalidInput)
			}

			return printJSON(cmd, schema.VehiclesResponse{
				Vehicles:    filtered,
				Count:       len(filtered),
				Criteria:    criteria,
				Destination: schema.NewDestinationInfo(criteria.Destination, destinations),
			}.Truncate(v.GetInt("limit")))
		},
	}

	flags := cmd.Flags()
	flags.String("catalog", "", "catalog JSON file, as returned by GET /cars")
	flags.String("catalog-url", "", "catalog service base URL, used when no file is given")
	flags.Duration("catalog-timeout", client.DefaultTimeout, "catalog service timeout")
	flags.String("category", "", "vehicle category, matched by containment")
	flags.Int("seats", 0, "exact number of seats")
	flags.String("destination", "", "trip destination")
	flags.Bool("ac", false, "require air conditioning")
	flags.Bool("rear-camera", false, "require a rear camera")
	flags.Bool("touch-screen", false, "require a touch screen")
	flags.Bool("four-by-four", false, "require a 4x4")
	flags.Bool("available-only", false, "skip unavailable vehicles")
	flags.Float64("price-min", 0, "minimum price per day")
	flags.Float64("price-max", 0, "maximum price per day")
	flags.Int("limit", 0, "return at most this many vehicles, 0 for all")
	v.BindPFlags(flags)

	return cmd
}

func loadCatalog(ctx context.Context, v *viper.Viper) ([]rules.Vehicle, error) {
	if path := v.GetString("catalog"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var cars []catalogJson.CarRS
		if err := json.Unmarshal(content, &cars); err != nil {
			return nil, fmt.Errorf("cannot parse catalog file: %w", err)
		}

		vehicles := make([]rules.Vehicle, 0, len(cars))
		for _, car := range cars {
			vehicles = append(vehicles, car.Vehicle())
		}
		return vehicles, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.NewWithWriter(os.Stderr, v.GetString("log-level"))
	catalogClient, err := catalog.New(
		log,
		client.WithName(RootCmdName),
		client.WithBaseURL(v.GetString("catalog-url")),
		client.WithTimeout(v.GetDuration("catalog-timeout")),
	)
	if err != nil {
		return nil, fmt.Errorf("either --catalog or --catalog-url is required: %w", err)
	}

	return catalogClient.ListVehicles(ctx)
}

func newQuoteCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a rental",
		RunE: func(cmd *cobra.Command, args []string) error {
			pickup, err := rules.ParseDate(v.GetString("pickup"))
			if err != nil {
				return err
			}
			dropoff, err := rules.ParseDate(v.GetString("dropoff"))
			if err != nil {
				return err
			}

			result, err := rules.Quote(v.GetFloat64("price"), rules.DateRange{Pickup: pickup, Dropoff: dropoff})
			if err != nil {
				return err
			}

			return printJSON(cmd, schema.NewQuoteResponse(0, result))
		},
	}

	flags := cmd.Flags()
	flags.Float64("price", 0, "price per day")
	flags.String("pickup", "", "pickup date, YYYY-MM-DD")
	flags.String("dropoff", "", "dropoff date, YYYY-MM-DD")
	v.BindPFlags(flags)

	return cmd
}

func newDestinationsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List the configured destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			destinations, err := destinationSet(v)
			if err != nil {
				return err
			}

			return printJSON(cmd, schema.DestinationsResponse{
				Flexible:      destinations.Flexible(),
				FourByFour:    destinations.FourByFour(),
				UnknownPolicy: string(destinations.Policy()),
			})
		},
	}
}
