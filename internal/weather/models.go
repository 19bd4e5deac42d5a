package weather

import (
	"fmt"
	"strings"
)

// Location is a resolved geographic point. Loc always equals
// Latitude + "," + Longitude; build values with NewLocation or ParseLoc.
type Location struct {
	Loc        string `json:"loc" yaml:"loc"`
	Latitude   string `json:"latitude" yaml:"latitude"`
	Longitude  string `json:"longitude" yaml:"longitude"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
}

// NewLocation builds a Location from its coordinate parts.
func NewLocation(latitude, longitude, postalCode string) Location {
	return Location{
		Loc:        latitude + "," + longitude,
		Latitude:   latitude,
		Longitude:  longitude,
		PostalCode: postalCode,
	}
}

// ParseLoc splits a combined "lat,lon" string, as reported by IP geolocation services.
func ParseLoc(loc, postalCode string) (Location, error) {
	lat, lon, ok := strings.Cut(loc, ",")
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if !ok || lat == "" || lon == "" || strings.Contains(lon, ",") {
		return Location{}, fmt.Errorf("malformed coordinates %q", loc)
	}
	return NewLocation(lat, lon, postalCode), nil
}

// String renders the location for terminal output.
func (l Location) String() string {
	return fmt.Sprintf("Coordinates: %s\n  Postal Code: %s", l.Loc, l.PostalCode)
}

// Unit is a temperature unit. The zero value behaves as Fahrenheit.
type Unit byte

const (
	Fahrenheit Unit = 'f'
	Celsius    Unit = 'c'
)

// ParseUnit is lenient: "c" or "celsius" (any case) selects Celsius, anything else Fahrenheit.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius
	default:
		return Fahrenheit
	}
}

// Code is the single-character persisted form.
func (u Unit) Code() string {
	if u == Celsius {
		return "c"
	}
	return "f"
}

// String returns the display name, which is also the Open-Meteo
// temperature_unit query value.
func (u Unit) String() string {
	if u == Celsius {
		return "celsius"
	}
	return "fahrenheit"
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.Code()), nil
}

func (u *Unit) UnmarshalText(b []byte) error {
	*u = ParseUnit(string(b))
	return nil
}

// CurrentConditions is the normalized shape every provider response is reduced to.
// Both temperatures are always populated.
type CurrentConditions struct {
	TempC float64
	TempF float64
	Icon  string
}

// Temperature selects the reading for u.
func (c CurrentConditions) Temperature(u Unit) float64 {
	if u == Celsius {
		return c.TempC
	}
	return c.TempF
}

// Output is the command result written to stdout.
type Output struct {
	Temp int    `json:"temp"`
	Icon string `json:"icon"`
}

func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }
