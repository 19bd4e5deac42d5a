package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/metrics"
)

var validate = validator.New()

// Region is an explicit "POSTAL_CODE,COUNTRY" location request.
type Region struct {
	PostalCode string `validate:"required"`
	Country    string `validate:"required"`
}

// ParseRegion validates a region string. It never touches the network.
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Region{}, fmt.Errorf("%w, expect [POSTAL_CODE, COUNTRY]", ErrInvalidRegionFormat)
	}

	r := Region{
		PostalCode: strings.TrimSpace(parts[0]),
		Country:    strings.TrimSpace(parts[1]),
	}
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "PostalCode":
				return Region{}, fmt.Errorf("%w: missing postal code", ErrInvalidRegionFormat)
			case "Country":
				return Region{}, fmt.Errorf("%w: missing country", ErrInvalidRegionFormat)
			}
		}
		return Region{}, fmt.Errorf("%w: %w", ErrInvalidRegionFormat, err)
	}
	return r, nil
}

// Resolver decides where a request's location comes from: an explicit
// region, the stored configuration, or IP inference, in that order.
type Resolver struct {
	cache    Cache
	geocoder Geocoder
	locator  IPLocator
}

func NewResolver(cache Cache, geocoder Geocoder, locator IPLocator) *Resolver {
	return &Resolver{
		cache:    cache,
		geocoder: geocoder,
		locator:  locator,
	}
}

// Resolve returns the location for one request. An empty region means none
// was given; stored may be nil.
func (r *Resolver) Resolve(ctx context.Context, region string, stored *Location) (Location, error) {
	if region != "" {
		reg, err := ParseRegion(region)
		if err != nil {
			return Location{}, err
		}
		return r.byRegion(ctx, reg)
	}

	if stored != nil {
		logger.Debugf("resolver: using stored location %s", stored.Loc)
		return *stored, nil
	}

	return r.byIP(ctx)
}

func (r *Resolver) byRegion(ctx context.Context, reg Region) (Location, error) {
	loc, ok, err := r.cache.Get(ctx, reg.PostalCode)
	if err != nil {
		return Location{}, fmt.Errorf("%w: lookup %q: %w", ErrCache, reg.PostalCode, err)
	}
	if ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		logger.Debugf("resolver: cache hit for %s", reg.PostalCode)
		return loc, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()
	logger.Debugf("resolver: cache miss for %s, geocoding", reg.PostalCode)

	loc, err = r.geocoder.Geocode(ctx, reg.PostalCode, reg.Country)
	if err != nil {
		if errors.Is(err, ErrUnknownLocation) {
			return Location{}, err
		}
		return Location{}, fmt.Errorf("%w: %s, %s: %w", ErrUnknownLocation, reg.PostalCode, reg.Country, err)
	}
	// Key the entry by what the caller asked for so the next lookup hits.
	loc.PostalCode = reg.PostalCode

	if err := r.cache.Set(ctx, loc); err != nil {
		return Location{}, fmt.Errorf("%w: store %q: %w", ErrCache, loc.PostalCode, err)
	}
	return loc, nil
}

// byIP never reads the cache: the current IP's location changes with the
// network. A reported postal code is written through for later lookups.
func (r *Resolver) byIP(ctx context.Context) (Location, error) {
	loc, err := r.locator.Locate(ctx)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	logger.Debugf("resolver: inferred location %s from IP", loc.Loc)

	if loc.PostalCode != "" {
		if err := r.cache.Set(ctx, loc); err != nil {
			return Location{}, fmt.Errorf("%w: store %q: %w", ErrCache, loc.PostalCode, err)
		}
	}
	return loc, nil
}
