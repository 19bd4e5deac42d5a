package weather

import (
	"context"
)

// Settings is what the configuration layer hands the orchestrator.
type Settings struct {
	Unit           Unit
	StoredLocation *Location
	Credentials    map[ProviderID]string
}

// ProvidersFor builds the priority list. Credentialed providers are only
// included when their credential is non-empty.
func ProvidersFor(credentials map[ProviderID]string) []Provider {
	providers := make([]Provider, 0, len(Priority))
	for _, id := range Priority {
		p := Provider{ID: id, Credential: credentials[id]}
		if !p.Valid() {
			continue
		}
		providers = append(providers, p)
	}
	return providers
}

// Service composes location resolution with the provider fallback loop.
type Service struct {
	resolver *Resolver
	fetcher  *Fetcher
}

// NewService creates a new Service.
func NewService(resolver *Resolver, fetcher *Fetcher) *Service {
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
	}
}

// Resolve exposes location resolution on its own, for commands that only
// need a location.
func (s *Service) Resolve(ctx context.Context, region string, stored *Location) (Location, error) {
	return s.resolver.Resolve(ctx, region, stored)
}

// Current resolves the location, fetches conditions and reduces them to the
// configured unit. The temperature is truncated toward zero.
func (s *Service) Current(ctx context.Context, region string, settings Settings) (Output, error) {
	loc, err := s.resolver.Resolve(ctx, region, settings.StoredLocation)
	if err != nil {
		return Output{}, err
	}

	cond, err := s.fetcher.Fetch(ctx, settings.Unit, loc.Latitude, loc.Longitude, ProvidersFor(settings.Credentials))
	if err != nil {
		return Output{}, err
	}

	return Output{
		Temp: int(cond.Temperature(settings.Unit)),
		Icon: cond.Icon,
	}, nil
}
