package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/conditions/internal/cache"
	"github.com/i474232898/conditions/internal/config"
	"github.com/i474232898/conditions/internal/weather"
)

type fakeGeocoder struct{ calls int }

func (g *fakeGeocoder) Geocode(_ context.Context, postalCode, country string) (weather.Location, error) {
	g.calls++
	if postalCode == "10001" && country == "US" {
		return weather.NewLocation("40.7128", "-74.0060", "10001"), nil
	}
	return weather.Location{}, weather.ErrUnknownLocation
}

type fakeLocator struct{}

func (fakeLocator) Locate(context.Context) (weather.Location, error) {
	return weather.NewLocation("52.5200", "13.4050", "10115"), nil
}

type fakeClient struct {
	cond weather.CurrentConditions
	err  error
	reqs []weather.ConditionsRequest
}

func (c *fakeClient) Current(_ context.Context, req weather.ConditionsRequest) (weather.CurrentConditions, error) {
	c.reqs = append(c.reqs, req)
	return c.cond, c.err
}

type harness struct {
	dir       string
	cachePath string
	geocoder  *fakeGeocoder
	primary   *fakeClient
	fallback  *fakeClient
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{"CONDITIONS_UNIT", "WEATHERAPI_API_KEY", "OPENWEATHER_API_KEY", "GOOGLE_GEOCODER_API_KEY", "LOG_LEVEL", "CONDITIONS_CONFIG"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("CONDITIONS_CACHE_PATH", filepath.Join(dir, "cache.db"))
	return &harness{
		dir:       dir,
		cachePath: filepath.Join(dir, "cache.db"),
		geocoder:  &fakeGeocoder{},
		primary:   &fakeClient{cond: weather.CurrentConditions{TempC: 10, TempF: 50, Icon: weather.Icon(weather.WeatherAPI, true, 1006)}},
		fallback:  &fakeClient{cond: weather.CurrentConditions{TempC: -2.5, TempF: 27.5, Icon: weather.Icon(weather.OpenMeteo, false, 71)}},
	}
}

func (h *harness) build(ctx context.Context, cfg *config.AppConfig, _ bool) (*Deps, error) {
	store, err := cache.Open(ctx, cfg.CachePath)
	if err != nil {
		return nil, err
	}
	resolver := weather.NewResolver(store, h.geocoder, fakeLocator{})
	fetcher := weather.NewFetcher(weather.Clients{WeatherAPI: h.primary, OpenMeteo: h.fallback})
	return &Deps{Service: weather.NewService(resolver, fetcher), Close: store.Close}, nil
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(h.build)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(h.dir, "config.yaml")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCurrentWithRegion(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "current", "10001,US")
	require.NoError(t, err)
	// No weatherapi key yet: only the fallback answers, in fahrenheit.
	assert.JSONEq(t, `{"temp":27,"icon":"`+weather.Icon(weather.OpenMeteo, false, 71)+`"}`, strings.TrimSpace(out))
	assert.Empty(t, h.primary.reqs)

	// Second lookup is served from the SQLite cache.
	_, err = h.run(t, "current", "10001,US")
	require.NoError(t, err)
	assert.Equal(t, 1, h.geocoder.calls)
}

func TestCurrentUsesStoredSettings(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "unit", "set", "c")
	require.NoError(t, err)
	_, err = h.run(t, "weather-api-key", "set", "k")
	require.NoError(t, err)
	_, err = h.run(t, "location", "set", "10001,US")
	require.NoError(t, err)

	out, err := h.run(t, "current")
	require.NoError(t, err)
	assert.JSONEq(t, `{"temp":10,"icon":"`+weather.Icon(weather.WeatherAPI, true, 1006)+`"}`, strings.TrimSpace(out))

	require.Len(t, h.primary.reqs, 1)
	assert.Equal(t, weather.ConditionsRequest{
		Unit: weather.Celsius, Latitude: "40.7128", Longitude: "-74.0060", Credential: "k",
	}, h.primary.reqs[0])
}

func TestCurrentErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "current", "10001")
	require.ErrorIs(t, err, weather.ErrInvalidRegionFormat)
	assert.Zero(t, h.geocoder.calls)

	h.fallback.err = errors.New("down")
	_, err = h.run(t, "current", "10001,US")
	require.ErrorIs(t, err, weather.ErrNoProviderSucceeded)
}

func TestLocationCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "location", "view")
	require.NoError(t, err)
	assert.Equal(t, "Coordinates: 52.5200,13.4050\n  Postal Code: 10115\n", out)

	out, err = h.run(t, "location", "set", "10001,US")
	require.NoError(t, err)
	assert.Equal(t, "location stored successfully\n", out)

	out, err = h.run(t, "location", "view")
	require.NoError(t, err)
	assert.Equal(t, "Coordinates: 40.7128,-74.0060\n  Postal Code: 10001\n", out)

	out, err = h.run(t, "location", "unset")
	require.NoError(t, err)
	assert.Equal(t, "location unset successfully\n", out)

	_, err = h.run(t, "location", "set", "00000,ZZ")
	require.ErrorIs(t, err, weather.ErrUnknownLocation)
}

func TestWeatherAPIKeyCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "weather-api-key", "view")
	require.NoError(t, err)
	assert.Equal(t, "no weatherapi.com key stored\n", out)

	out, err = h.run(t, "weather-api-key", "set", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "weatherapi.com key stored successfully\n", out)

	out, err = h.run(t, "weather-api-key", "view")
	require.NoError(t, err)
	assert.Equal(t, "token stored as: abc123\n", out)

	out, err = h.run(t, "weather-api-key", "unset")
	require.NoError(t, err)
	assert.Equal(t, "weatherapi.com key unset successfully\n", out)
}

func TestUnitAndConfigCommands(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "config.yaml")

	out, err := h.run(t, "unit", "view")
	require.NoError(t, err)
	assert.Equal(t, "unit stored as: fahrenheit\n", out)

	out, err = h.run(t, "unit", "set", "c")
	require.NoError(t, err)
	assert.Equal(t, "unit stored as: celsius\n", out)

	out, err = h.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = h.run(t, "config", "view")
	require.NoError(t, err)
	assert.Equal(t, "Stored Configuration\n  Coordinates: not set\n  Postal Code: not set\n  Unit: celsius\n  Weather API Key: not set\n", out)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestArgumentValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "current", "a,b", "c,d")
	require.Error(t, err)
	_, err = h.run(t, "location", "set")
	require.Error(t, err)
}
