package appservices_test

import (
	"context"
	"errors"
	"testing"

	"takeout/internal/core/application/appservices"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGeoLookup struct{ mock.Mock }

func (m *MockGeoLookup) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(ports.GeocodeResult), args.Error(1)
}

func (m *MockGeoLookup) Route(ctx context.Context, origin, destination kernel.Coordinate) (ports.RouteResult, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(ports.RouteResult), args.Error(1)
}

const shopAddress = "1 Shop St"

func coord(t *testing.T, lat, lng float64) kernel.Coordinate {
	t.Helper()
	c, err := kernel.NewCoordinate(lat, lng)
	require.NoError(t, err)
	return c
}

func TestNewAddressValidator(t *testing.T) {
	_, err := appservices.NewAddressValidator(nil, shopAddress, 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = appservices.NewAddressValidator(new(MockGeoLookup), "", 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAddressValidator_Validate(t *testing.T) {
	shop := coord(t, 31.23, 121.47)
	home := coord(t, 31.25, 121.50)

	tests := []struct {
		name      string
		shopRes   ports.GeocodeResult
		homeRes   ports.GeocodeResult
		homeErr   error
		route     *ports.RouteResult
		wantErr   error
		wantMeter int
	}{
		{
			name:      "exactly at the ceiling is accepted",
			shopRes:   ports.GeocodeResult{Status: "0", Location: shop},
			homeRes:   ports.GeocodeResult{Status: "0", Location: home},
			route:     &ports.RouteResult{Status: "0", DistanceMeters: 5000},
			wantMeter: 5000,
		},
		{
			name:    "one meter over is rejected",
			shopRes: ports.GeocodeResult{Status: "0", Location: shop},
			homeRes: ports.GeocodeResult{Status: "0", Location: home},
			route:   &ports.RouteResult{Status: "0", DistanceMeters: 5001},
			wantErr: appservices.ErrOutOfRange,
		},
		{
			name:    "customer address not found",
			shopRes: ports.GeocodeResult{Status: "0", Location: shop},
			homeRes: ports.GeocodeResult{Status: "1"},
			wantErr: appservices.ErrAddressUnresolvable,
		},
		{
			name:    "geocoding unreachable",
			shopRes: ports.GeocodeResult{Status: "0", Location: shop},
			homeErr: errors.New("dial tcp: timeout"),
			wantErr: ports.ErrGateway,
		},
		{
			name:    "no driving route",
			shopRes: ports.GeocodeResult{Status: "0", Location: shop},
			homeRes: ports.GeocodeResult{Status: "0", Location: home},
			route:   &ports.RouteResult{Status: "2"},
			wantErr: appservices.ErrRouteUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			geo := new(MockGeoLookup)
			geo.On("Geocode", ctx, shopAddress).Return(tt.shopRes, nil).Once()
			geo.On("Geocode", ctx, "2 Home Rd").Return(tt.homeRes, tt.homeErr).Once()
			if tt.route != nil {
				geo.On("Route", ctx, shop, home).Return(*tt.route, nil).Once()
			}

			v, err := appservices.NewAddressValidator(geo, shopAddress, 5000)
			require.NoError(t, err)

			check, err := v.Validate(ctx, "2 Home Rd")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantMeter, check.DistanceMeters)
			}
			geo.AssertExpectations(t)
		})
	}
}

func TestAddressValidator_OutOfRangeDetails(t *testing.T) {
	ctx := t.Context()
	shop := coord(t, 1, 1)
	home := coord(t, 2, 2)
	geo := new(MockGeoLookup)
	geo.On("Geocode", ctx, shopAddress).Return(ports.GeocodeResult{Status: "0", Location: shop}, nil)
	geo.On("Geocode", ctx, "far").Return(ports.GeocodeResult{Status: "0", Location: home}, nil)
	geo.On("Route", ctx, shop, home).Return(ports.RouteResult{Status: "0", DistanceMeters: 5001}, nil)

	v, _ := appservices.NewAddressValidator(geo, shopAddress, 0)
	_, err := v.Validate(ctx, "far")

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "distance is 5001, min value is 0, max value is 5000")
}

func TestAddressValidator_ShopUnresolvable(t *testing.T) {
	ctx := t.Context()
	geo := new(MockGeoLookup)
	geo.On("Geocode", ctx, shopAddress).Return(ports.GeocodeResult{Status: "302"}, nil).Once()

	v, _ := appservices.NewAddressValidator(geo, shopAddress, 5000)
	_, err := v.Validate(ctx, "anything")

	require.ErrorIs(t, err, appservices.ErrAddressUnresolvable)
	geo.AssertExpectations(t)
}
