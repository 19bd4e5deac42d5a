package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/conditions/internal/cache"
	"github.com/i474232898/conditions/internal/weather"
)

type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, postalCode, country string) (weather.Location, error) {
	if postalCode == "10001" && country == "US" {
		return weather.NewLocation("40.7128", "-74.0060", "10001"), nil
	}
	return weather.Location{}, weather.ErrUnknownLocation
}

type stubLocator struct{ err error }

func (l stubLocator) Locate(context.Context) (weather.Location, error) {
	return weather.NewLocation("52.52", "13.40", ""), l.err
}

type stubClient struct {
	cond weather.CurrentConditions
	err  error
}

func (s stubClient) Current(context.Context, weather.ConditionsRequest) (weather.CurrentConditions, error) {
	return s.cond, s.err
}

func newTestApp(client weather.ConditionsClient, locator weather.IPLocator) *fiber.App {
	svc := weather.NewService(
		weather.NewResolver(cache.NewMemoryCache(nil), stubGeocoder{}, locator),
		weather.NewFetcher(weather.Clients{OpenMeteo: client}),
	)
	settings := func() weather.Settings {
		return weather.Settings{Unit: weather.Celsius}
	}
	return NewApp(svc, settings, Options{})
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestCurrentConditions(t *testing.T) {
	app := newTestApp(stubClient{cond: weather.CurrentConditions{TempC: 10.9, TempF: 51.6, Icon: "x"}}, stubLocator{})

	resp, body := get(t, app, "/api/v1/conditions/current?region=10001,US")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"temp":10,"icon":"x"}`, string(body))

	resp, body = get(t, app, "/api/v1/conditions/current?region=10001,US&unit=f")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"temp":51,"icon":"x"}`, string(body))
}

func TestCurrentConditionsErrors(t *testing.T) {
	ok := stubClient{cond: weather.CurrentConditions{TempC: 1}}

	tests := []struct {
		name    string
		client  weather.ConditionsClient
		locator weather.IPLocator
		target  string
		status  int
	}{
		{"malformed region", ok, stubLocator{}, "/api/v1/conditions/current?region=10001", http.StatusBadRequest},
		{"bad unit", ok, stubLocator{}, "/api/v1/conditions/current?unit=k", http.StatusBadRequest},
		{"unknown postal code", ok, stubLocator{}, "/api/v1/conditions/current?region=00000,ZZ", http.StatusNotFound},
		{"ip lookup fails", ok, stubLocator{err: errors.New("offline")}, "/api/v1/conditions/current", http.StatusServiceUnavailable},
		{"all providers fail", stubClient{err: errors.New("down")}, stubLocator{}, "/api/v1/conditions/current", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, newTestApp(tt.client, tt.locator), tt.target)
			assert.Equal(t, tt.status, resp.StatusCode)

			var payload struct {
				Error   bool   `json:"error"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.True(t, payload.Error)
			assert.NotEmpty(t, payload.Message)
		})
	}
}

func TestLocationEndpoint(t *testing.T) {
	app := newTestApp(stubClient{}, stubLocator{})

	resp, body := get(t, app, "/api/v1/location?region=10001,US")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"loc":"40.7128,-74.0060","latitude":"40.7128","longitude":"-74.0060","postal_code":"10001"}`, string(body))
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(stubClient{}, stubLocator{})

	resp, body := get(t, app, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"conditions"}`, string(body))

	resp, body = get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "conditions_http_requests_total")
}
