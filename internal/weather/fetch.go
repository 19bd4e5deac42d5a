package weather

import (
	"context"
	"fmt"

	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/metrics"
)

// Clients holds one adapter per provider identity. A nil client makes its
// provider fail when attempted.
type Clients struct {
	WeatherAPI  ConditionsClient
	OpenWeather ConditionsClient
	OpenMeteo   ConditionsClient
}

// client is the single dispatch point from provider identity to adapter.
func (c Clients) client(id ProviderID) (ConditionsClient, error) {
	var cl ConditionsClient
	switch id {
	case WeatherAPI:
		cl = c.WeatherAPI
	case OpenWeather:
		cl = c.OpenWeather
	case OpenMeteo:
		cl = c.OpenMeteo
	default:
		return nil, fmt.Errorf("unsupported provider %d", int(id))
	}
	if cl == nil {
		return nil, fmt.Errorf("no client configured for %s", id)
	}
	return cl, nil
}

// Fetcher runs the first-success-wins fallback loop over providers.
type Fetcher struct {
	clients Clients
}

func NewFetcher(clients Clients) *Fetcher {
	return &Fetcher{clients: clients}
}

// Fetch tries providers strictly in the given order, one at a time, and
// returns the first success. Invalid providers are skipped without network
// I/O. Failures are logged and the loop moves on; nothing is retried. If no
// provider succeeds the error is an *ExhaustedError.
func (f *Fetcher) Fetch(ctx context.Context, unit Unit, latitude, longitude string, providers []Provider) (CurrentConditions, error) {
	attempts := make([]Attempt, 0, len(providers))

	for _, p := range providers {
		if !p.Valid() {
			logger.Debugf("fetch: skipping %s, no credential", p.ID)
			attempts = append(attempts, Attempt{Provider: p.ID, Outcome: OutcomeSkipped})
			metrics.ProviderAttempts.WithLabelValues(p.ID.String(), string(OutcomeSkipped)).Inc()
			continue
		}

		cond, err := f.attempt(ctx, p, ConditionsRequest{
			Unit:       unit,
			Latitude:   latitude,
			Longitude:  longitude,
			Credential: p.Credential,
		})
		if err != nil {
			logger.Warnf("fetch: %s failed: %v", p.ID, err)
			attempts = append(attempts, Attempt{Provider: p.ID, Outcome: OutcomeFailed, Err: err})
			metrics.ProviderAttempts.WithLabelValues(p.ID.String(), string(OutcomeFailed)).Inc()
			continue
		}

		logger.Debugf("fetch: %s answered", p.ID)
		metrics.ProviderAttempts.WithLabelValues(p.ID.String(), string(OutcomeSucceeded)).Inc()
		return cond, nil
	}

	return CurrentConditions{}, newExhaustedError(attempts)
}

func (f *Fetcher) attempt(ctx context.Context, p Provider, req ConditionsRequest) (CurrentConditions, error) {
	cl, err := f.clients.client(p.ID)
	if err != nil {
		return CurrentConditions{}, err
	}
	return cl.Current(ctx, req)
}
