package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/weather"
)

// NominatimGeocoder resolves postal codes through OpenStreetMap Nominatim.
// Nominatim's usage policy allows one request per second, which the limiter enforces.
type NominatimGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

func NewNominatimGeocoder(client *http.Client) *NominatimGeocoder {
	return &NominatimGeocoder{
		name:    "nominatim",
		baseURL: "https://nominatim.openstreetmap.org/search.php",
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("nominatim"),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (g *NominatimGeocoder) Name() string {
	return g.name
}

type nominatimResult struct {
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
	Name string `json:"name"`
}

// Geocode returns the first match. An empty result set wraps weather.ErrUnknownLocation.
func (g *NominatimGeocoder) Geocode(ctx context.Context, postalCode, country string) (weather.Location, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return weather.Location{}, err
	}

	values := url.Values{}
	values.Set("format", "json")
	values.Set("postalcode", postalCode)
	values.Set("country", country)

	var results []nominatimResult
	if err := getJSON(ctx, g.httpCfg, g.circuit, g.baseURL, values, &results); err != nil {
		return weather.Location{}, err
	}
	if len(results) == 0 {
		return weather.Location{}, fmt.Errorf("%w: no match for %s, %s", weather.ErrUnknownLocation, postalCode, country)
	}

	first := results[0]
	if first.Lat == "" || first.Lon == "" {
		return weather.Location{}, fmt.Errorf("%w: result for %s has no coordinates", weather.ErrUnknownLocation, postalCode)
	}
	logger.Debugf("nominatim: %s, %s matched %q", postalCode, country, first.Name)

	return weather.NewLocation(first.Lat, first.Lon, postalCode), nil
}
