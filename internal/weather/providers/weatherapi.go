package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/conditions/internal/weather"
)

// WeatherAPIProvider implements weather.ConditionsClient for WeatherAPI.com.
// The API key arrives with each request.
type WeatherAPIProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    weather.WeatherAPI.String(),
		baseURL: "https://api.weatherapi.com/v1/current.json",
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIResponse struct {
	Current *struct {
		TempC     *float64 `json:"temp_c" validate:"required"`
		TempF     *float64 `json:"temp_f" validate:"required"`
		IsDay     *int     `json:"is_day" validate:"required"`
		Condition *struct {
			Code *int `json:"code" validate:"required"`
		} `json:"condition" validate:"required"`
	} `json:"current" validate:"required"`
}

func (p *WeatherAPIProvider) Current(ctx context.Context, req weather.ConditionsRequest) (weather.CurrentConditions, error) {
	if req.Credential == "" {
		return weather.CurrentConditions{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", req.Credential)
	values.Set("q", req.Latitude+","+req.Longitude)

	var payload weatherAPIResponse
	if err := getJSON(ctx, p.httpCfg, p.circuit, p.baseURL, values, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if err := requireFields(&payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	cur := payload.Current
	return weather.CurrentConditions{
		TempC: *cur.TempC,
		TempF: *cur.TempF,
		Icon:  weather.Icon(weather.WeatherAPI, weather.IsDay(*cur.IsDay), *cur.Condition.Code),
	}, nil
}
