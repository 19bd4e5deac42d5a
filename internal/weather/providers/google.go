package providers

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/conditions/internal/weather"
)

// googleKeyMu guards writes to geocoder.ApiKey, a package variable of the client library.
var googleKeyMu sync.Mutex

// GoogleGeocoder resolves postal codes with the Google Geocoding API. It is
// used instead of Nominatim when a Google API key is configured.
type GoogleGeocoder struct {
	name    string
	apiKey  string
	timeout time.Duration
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder bounds every lookup by timeout, since the client library
// sends its requests without one. Non-positive values default to 10 seconds.
func NewGoogleGeocoder(apiKey string, timeout time.Duration) *GoogleGeocoder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleGeocoder{
		name:    "google",
		apiKey:  apiKey,
		timeout: timeout,
		geocode: geocoder.Geocoding,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

type googleResult struct {
	loc geocoder.Location
	err error
}

// Geocode runs the blocking client call in a goroutine so the timeout or ctx
// can abandon it. An abandoned call finishes in the background.
func (g *GoogleGeocoder) Geocode(ctx context.Context, postalCode, country string) (weather.Location, error) {
	if g.apiKey == "" {
		return weather.Location{}, fmt.Errorf("google geocoder api key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	googleKeyMu.Lock()
	geocoder.ApiKey = g.apiKey
	googleKeyMu.Unlock()

	done := make(chan googleResult, 1)
	go func() {
		loc, err := g.geocode(geocoder.Address{PostalCode: postalCode, Country: country})
		done <- googleResult{loc: loc, err: err}
	}()

	var res googleResult
	select {
	case <-ctx.Done():
		return weather.Location{}, fmt.Errorf("google geocoder: %w", ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		return weather.Location{}, fmt.Errorf("%w: %s, %s: %w", weather.ErrUnknownLocation, postalCode, country, res.err)
	}
	if res.loc.Latitude == 0 && res.loc.Longitude == 0 {
		return weather.Location{}, fmt.Errorf("%w: no match for %s, %s", weather.ErrUnknownLocation, postalCode, country)
	}

	return weather.NewLocation(
		strconv.FormatFloat(res.loc.Latitude, 'f', -1, 64),
		strconv.FormatFloat(res.loc.Longitude, 'f', -1, 64),
		postalCode,
	), nil
}
