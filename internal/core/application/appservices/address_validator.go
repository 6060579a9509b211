// Package appservices holds application services that call out to external
// collaborators on behalf of several commands.
package appservices

import (
	"context"
	"errors"
	"fmt"

	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"
)

var (
	ErrAddressUnresolvable = errors.New("address cannot be resolved")
	ErrRouteUnavailable    = errors.New("route is unavailable")
	ErrOutOfRange          = errors.New("address is out of delivery range")
)

// DefaultMaxDistanceMeters is the delivery radius used when none is configured.
const DefaultMaxDistanceMeters = 5000

type AddressCheck struct {
	DistanceMeters int
}

// AddressValidator decides whether an address lies within driving range of the shop.
type AddressValidator struct {
	geo         ports.GeoLookup
	shopAddress string
	maxDistance int
}

func NewAddressValidator(geo ports.GeoLookup, shopAddress string, maxDistanceMeters int) (*AddressValidator, error) {
	if geo == nil {
		return nil, errs.NewValueIsRequiredError("geo")
	}
	if shopAddress == "" {
		return nil, errs.NewValueIsRequiredError("shop address")
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultMaxDistanceMeters
	}
	return &AddressValidator{geo: geo, shopAddress: shopAddress, maxDistance: maxDistanceMeters}, nil
}

// Validate accepts a driving distance up to and including the configured ceiling.
func (v *AddressValidator) Validate(ctx context.Context, address string) (AddressCheck, error) {
	shop, err := v.geo.Geocode(ctx, v.shopAddress)
	if err != nil {
		return AddressCheck{}, fmt.Errorf("%w: geocode shop: %w", ports.ErrGateway, err)
	}
	if shop.Status != ports.GeoStatusOK {
		return AddressCheck{}, fmt.Errorf("%w: shop address, status %s", ErrAddressUnresolvable, shop.Status)
	}

	customer, err := v.geo.Geocode(ctx, address)
	if err != nil {
		return AddressCheck{}, fmt.Errorf("%w: geocode customer: %w", ports.ErrGateway, err)
	}
	if customer.Status != ports.GeoStatusOK {
		return AddressCheck{}, fmt.Errorf("%w: status %s", ErrAddressUnresolvable, customer.Status)
	}

	route, err := v.geo.Route(ctx, shop.Location, customer.Location)
	if err != nil {
		return AddressCheck{}, fmt.Errorf("%w: route: %w", ports.ErrGateway, err)
	}
	if route.Status != ports.GeoStatusOK {
		return AddressCheck{}, fmt.Errorf("%w: status %s", ErrRouteUnavailable, route.Status)
	}

	if route.DistanceMeters > v.maxDistance {
		return AddressCheck{}, fmt.Errorf("%w: %w", ErrOutOfRange,
			errs.NewValueIsOutOfRangeError("distance", route.DistanceMeters, 0, v.maxDistance))
	}

	return AddressCheck{DistanceMeters: route.DistanceMeters}, nil
}
