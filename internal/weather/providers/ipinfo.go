package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/conditions/internal/weather"
)

// IPInfoLocator infers the caller's location from ipinfo.io.
type IPInfoLocator struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewIPInfoLocator(client *http.Client) *IPInfoLocator {
	return &IPInfoLocator{
		name:    "ipinfo",
		baseURL: "https://ipinfo.io/json",
		httpCfg: newHTTPConfig(client),
		circuit: newCircuitBreaker("ipinfo"),
	}
}

func (l *IPInfoLocator) Name() string {
	return l.name
}

type ipInfoResponse struct {
	Loc    string `json:"loc" validate:"required"`
	Postal string `json:"postal"`
}

func (l *IPInfoLocator) Locate(ctx context.Context) (weather.Location, error) {
	var payload ipInfoResponse
	if err := getJSON(ctx, l.httpCfg, l.circuit, l.baseURL, nil, &payload); err != nil {
		return weather.Location{}, err
	}
	if err := requireFields(&payload); err != nil {
		return weather.Location{}, err
	}
	return weather.ParseLoc(payload.Loc, payload.Postal)
}
