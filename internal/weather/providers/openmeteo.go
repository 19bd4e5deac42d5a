package providers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/conditions/internal/weather"
)

// OpenMeteoProvider implements weather.ConditionsClient for Open-Meteo. It
// needs no credential and serves as the last-resort fallback.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    weather.OpenMeteo.String(),
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature" validate:"required"`
		WeatherCode *int     `json:"weathercode" validate:"required"`
		IsDay       *int     `json:"is_day" validate:"required"`
	} `json:"current_weather" validate:"required"`
}

// Current asks for the temperature in the requested unit and derives the other.
func (p *OpenMeteoProvider) Current(ctx context.Context, req weather.ConditionsRequest) (weather.CurrentConditions, error) {
	values := url.Values{}
	values.Set("current_weather", "true")
	values.Set("temperature_unit", req.Unit.String())
	values.Set("latitude", req.Latitude)
	values.Set("longitude", req.Longitude)

	var payload openMeteoResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL, values, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if err := requireFields(&payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	cw := payload.CurrentWeather
	temp := *cw.Temperature
	cond := weather.CurrentConditions{
		Icon: weather.Icon(weather.OpenMeteo, weather.IsDay(*cw.IsDay), *cw.WeatherCode),
	}
	if req.Unit == weather.Celsius {
		cond.TempC = temp
		cond.TempF = weather.CelsiusToFahrenheit(temp)
	} else {
		cond.TempF = temp
		cond.TempC = weather.FahrenheitToCelsius(temp)
	}
	return cond, nil
}
