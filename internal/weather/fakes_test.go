package weather

import (
	"context"
	"errors"
)

type fakeCache struct {
	entries map[string]Location
	gets    int
	sets    int
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]Location)}
}

func (c *fakeCache) Get(_ context.Context, postalCode string) (Location, bool, error) {
	c.gets++
	if c.getErr != nil {
		return Location{}, false, c.getErr
	}
	loc, ok := c.entries[postalCode]
	return loc, ok, nil
}

func (c *fakeCache) Set(_ context.Context, loc Location) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[loc.PostalCode] = loc
	return nil
}

type fakeGeocoder struct {
	results map[string]Location
	calls   int
	err     error
}

func (g *fakeGeocoder) Geocode(_ context.Context, postalCode, country string) (Location, error) {
	g.calls++
	if g.err != nil {
		return Location{}, g.err
	}
	loc, ok := g.results[postalCode+","+country]
	if !ok {
		return Location{}, ErrUnknownLocation
	}
	return loc, nil
}

type fakeLocator struct {
	loc   Location
	calls int
	err   error
}

func (l *fakeLocator) Locate(context.Context) (Location, error) {
	l.calls++
	return l.loc, l.err
}

type fakeClient struct {
	id    ProviderID
	tempC float64
	code  int
	isDay int
	err   error
	calls int
	reqs  []ConditionsRequest
}

func (c *fakeClient) Current(_ context.Context, req ConditionsRequest) (CurrentConditions, error) {
	c.calls++
	c.reqs = append(c.reqs, req)
	if c.err != nil {
		return CurrentConditions{}, c.err
	}
	return CurrentConditions{
		TempC: c.tempC,
		TempF: CelsiusToFahrenheit(c.tempC),
		Icon:  Icon(c.id, IsDay(c.isDay), c.code),
	}, nil
}

var errBoom = errors.New("boom")
