package weather

import "context"

// ProviderID identifies a weather data source. The set is closed.
type ProviderID int

const (
	WeatherAPI ProviderID = iota
	OpenWeather
	OpenMeteo
)

// Priority is the fixed order providers are tried in: credentialed sources
// first, the unauthenticated Open-Meteo last as the universal fallback.
var Priority = []ProviderID{WeatherAPI, OpenWeather, OpenMeteo}

func (id ProviderID) String() string {
	switch id {
	case WeatherAPI:
		return "weatherapi"
	case OpenWeather:
		return "openweathermap"
	case OpenMeteo:
		return "open-meteo"
	default:
		return "unknown"
	}
}

// RequiresCredential reports whether the provider needs an API key.
func (id ProviderID) RequiresCredential() bool {
	return id == WeatherAPI || id == OpenWeather
}

// Provider is a provider identity paired with the credential it will use.
type Provider struct {
	ID         ProviderID
	Credential string
}

// Valid reports whether the provider may be attempted. Invalid providers are
// skipped by the fallback loop without any network I/O.
func (p Provider) Valid() bool {
	return !p.ID.RequiresCredential() || p.Credential != ""
}

// ConditionsRequest carries everything an adapter needs for one lookup.
type ConditionsRequest struct {
	Unit       Unit
	Latitude   string
	Longitude  string
	Credential string
}

// ConditionsClient is implemented by each weather provider adapter.
type ConditionsClient interface {
	Current(ctx context.Context, req ConditionsRequest) (CurrentConditions, error)
}

// Cache maps postal codes to resolved locations. A miss is (Location{}, false, nil).
type Cache interface {
	Get(ctx context.Context, postalCode string) (Location, bool, error)
	Set(ctx context.Context, loc Location) error
}

// Geocoder resolves a postal code within a country. It returns an error
// wrapping ErrUnknownLocation when the service has no match.
type Geocoder interface {
	Geocode(ctx context.Context, postalCode, country string) (Location, error)
}

// IPLocator infers the caller's location from their public IP address.
type IPLocator interface {
	Locate(ctx context.Context) (Location, error)
}
