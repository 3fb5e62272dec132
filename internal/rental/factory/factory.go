package factory

import (
	"bitbucket.org/crgw/rental-hub/internal/catalog"
	"bitbucket.org/crgw/rental-hub/internal/config"
	"bitbucket.org/crgw/rental-hub/internal/rental/interfaces"
	"bitbucket.org/crgw/rental-hub/internal/rules"
	"bitbucket.org/crgw/rental-hub/internal/session"
	"bitbucket.org/crgw/rental-hub/internal/tools/client"
	"bitbucket.org/crgw/rental-hub/internal/tools/kvstore"
	"bitbucket.org/crgw/rental-hub/internal/tools/redisfactory"
	"github.com/rs/zerolog"
)

// Factory holds the collaborators shared by every request.
type Factory struct {
	catalog      interfaces.Catalog
	sessions     session.Store
	destinations *rules.DestinationSet
	adminSecret  string
}

func (f *Factory) Catalog() interfaces.Catalog {
	return f.catalog
}

func (f *Factory) Sessions() session.Store {
	return f.sessions
}

func (f *Factory) Destinations() *rules.DestinationSet {
	return f.destinations
}

func (f *Factory) AdminSecret() string {
	return f.adminSecret
}

func NewFactory(cfg *config.Config, redisFactory *redisfactory.Factory, log *zerolog.Logger) (*Factory, error) {
	destinations, err := cfg.Destinations.Destinations()
	if err != nil {
		return nil, err
	}

	catalogClient, err := catalog.New(
		log,
		client.WithBaseURL(cfg.Catalog.BaseURL),
		client.WithTimeout(cfg.Catalog.Timeout),
	)
	if err != nil {
		return nil, err
	}

	sessions := session.NewRedisStore(
		kvstore.NewRedisStore(redisFactory.SessionsClient()),
		destinations,
		cfg.Sessions.TTL,
	)

	return New(catalogClient, sessions, destinations, cfg.Admin.JWTSecret), nil
}

func New(catalog interfaces.Catalog, sessions session.Store, destinations *rules.DestinationSet, adminSecret string) *Factory {
	return &Factory{
		catalog:      catalog,
		sessions:     sessions,
		destinations: destinations,
		adminSecret:  adminSecret,
	}
}
