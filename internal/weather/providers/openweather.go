package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/conditions/internal/weather"
)

// OpenWeatherProvider implements weather.ConditionsClient for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    weather.OpenWeather.String(),
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherResponse struct {
	Main *struct {
		Temp *float64 `json:"temp" validate:"required"`
	} `json:"main" validate:"required"`
	Weather []struct {
		ID   *int   `json:"id" validate:"required"`
		Icon string `json:"icon"`
	} `json:"weather" validate:"required,min=1,dive"`
}

func (p *OpenWeatherProvider) Current(ctx context.Context, req weather.ConditionsRequest) (weather.CurrentConditions, error) {
	if req.Credential == "" {
		return weather.CurrentConditions{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", req.Credential)
	values.Set("units", "metric")
	values.Set("lat", req.Latitude)
	values.Set("lon", req.Longitude)

	var payload openWeatherResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL, values, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if err := requireFields(&payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	w := payload.Weather[0]
	temp := *payload.Main.Temp
	return weather.CurrentConditions{
		TempC: temp,
		TempF: weather.CelsiusToFahrenheit(temp),
		Icon:  weather.Icon(weather.OpenWeather, weather.IsDay(dayFlagFromIcon(w.Icon)), *w.ID),
	}, nil
}

// dayFlagFromIcon reads the d/n suffix of an OpenWeatherMap icon id such as "10d".
func dayFlagFromIcon(icon string) int {
	if strings.HasSuffix(icon, "d") {
		return 1
	}
	return 0
}
