package kernel

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate constructor")

// Coordinate is a WGS84 point returned by the geocoding service.
//
// Example:
//
//	shop, err := kernel.NewCoordinate(31.230416, 121.473701)
//	if err != nil {
//	    // Handle out of range latitude or longitude
//	}
//	fmt.Println(shop) // Output: 31.230416,121.473701
type Coordinate struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewCoordinate validates both axes and returns every violation joined.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	c := Coordinate{guard: guard.NewConstructorGuard()}
	if err := errors.Join(c.setLat(lat), c.setLng(lng)); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

func (c Coordinate) Lat() float64 {
	return c.lat
}

func (c Coordinate) Lng() float64 {
	return c.lng
}

// String renders "lat,lng" with six decimals, the form routing APIs take as origin and destination.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.lat, c.lng)
}

func (c Coordinate) IsEqual(other Coordinate) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return c.lat == other.lat && c.lng == other.lng, nil
}

func (c *Coordinate) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}
	c.lat = lat
	return nil
}

func (c *Coordinate) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}
	c.lng = lng
	return nil
}
