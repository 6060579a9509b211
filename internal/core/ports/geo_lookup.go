package ports

import (
	"context"

	"takeout/internal/core/domain/model/kernel"
)

// GeoStatusOK is the status code the lookup service reports on success.
const GeoStatusOK = "0"

type GeocodeResult struct {
	Status   string
	Location kernel.Coordinate
}

type RouteResult struct {
	Status         string
	DistanceMeters int
}

// GeoLookup is the external geocoding and driving-route service. A returned error
// means the service could not be reached; a non-OK Status means it answered with a failure.
type GeoLookup interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
	Route(ctx context.Context, origin, destination kernel.Coordinate) (RouteResult, error)
}
