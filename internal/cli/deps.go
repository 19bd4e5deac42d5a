package cli

import (
	"context"
	"net/http"

	"github.com/i474232898/conditions/internal/cache"
	"github.com/i474232898/conditions/internal/config"
	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/weather"
	"github.com/i474232898/conditions/internal/weather/providers"
)

// Deps are the collaborators a command needs.
type Deps struct {
	Service *weather.Service
	Close   func() error
}

// Builder constructs Deps from configuration. longRunning is set by the
// watch and serve commands.
type Builder func(ctx context.Context, cfg *config.AppConfig, longRunning bool) (*Deps, error)

// DefaultBuilder wires the SQLite cache and the real HTTP adapters.
func DefaultBuilder(ctx context.Context, cfg *config.AppConfig, longRunning bool) (*Deps, error) {
	store, err := cache.Open(ctx, cfg.CachePath)
	if err != nil {
		return nil, err
	}
	logger.Debugf("cache: %s", store.Path())

	var locCache weather.Cache = store
	if longRunning {
		locCache = cache.NewMemoryCache(store)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var geocoder weather.Geocoder = providers.NewNominatimGeocoder(httpClient)
	if cfg.GoogleGeocoderAPIKey != "" {
		logger.Debugf("geocoder: using google")
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey, cfg.HTTPTimeout)
	}

	resolver := weather.NewResolver(locCache, geocoder, providers.NewIPInfoLocator(httpClient))
	fetcher := weather.NewFetcher(weather.Clients{
		WeatherAPI:  providers.NewWeatherAPIProvider(httpClient),
		OpenWeather: providers.NewOpenWeatherProvider(httpClient),
		OpenMeteo:   providers.NewOpenMeteoProvider(httpClient),
	})

	return &Deps{
		Service: weather.NewService(resolver, fetcher),
		Close:   store.Close,
	}, nil
}
