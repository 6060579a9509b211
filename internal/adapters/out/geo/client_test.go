package geo_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"takeout/internal/adapters/out/geo"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *geo.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := geo.NewClient(geo.Config{BaseURL: srv.URL, AccessKey: "ak-test", Retries: 2})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := geo.NewClient(geo.Config{AccessKey: "ak"})
	require.Error(t, err)

	_, err = geo.NewClient(geo.Config{BaseURL: "http://localhost"})
	require.Error(t, err)
}

func TestClient_Geocode(t *testing.T) {
	t.Run("numeric ok status", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/geocoding/v3", r.URL.Path)
			assert.Equal(t, "1 Shop St", r.URL.Query().Get("address"))
			assert.Equal(t, "ak-test", r.URL.Query().Get("ak"))
			_, _ = w.Write([]byte(`{"status":0,"result":{"location":{"lng":121.47,"lat":31.23}}}`))
		})

		got, err := c.Geocode(t.Context(), "1 Shop St")

		require.NoError(t, err)
		assert.Equal(t, ports.GeoStatusOK, got.Status)
		assert.InDelta(t, 31.23, got.Location.Lat(), 1e-9)
		assert.InDelta(t, 121.47, got.Location.Lng(), 1e-9)
	})

	t.Run("failure status is returned, not an error", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"1","message":"server error"}`))
		})

		got, err := c.Geocode(t.Context(), "nowhere")

		require.NoError(t, err)
		assert.Equal(t, "1", got.Status)
	})

	t.Run("5xx is retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"status":"0","result":{"location":{"lng":1,"lat":2}}}`))
		})

		got, err := c.Geocode(t.Context(), "a")

		require.NoError(t, err)
		assert.Equal(t, ports.GeoStatusOK, got.Status)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		var calls atomic.Int32
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := c.Geocode(t.Context(), "a")

		require.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("4xx is not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := c.Geocode(t.Context(), "a")

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_Route(t *testing.T) {
	origin, err := kernel.NewCoordinate(31.23, 121.47)
	require.NoError(t, err)
	dest, err := kernel.NewCoordinate(31.25, 121.5)
	require.NoError(t, err)

	t.Run("first route distance", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directionlite/v1/driving", r.URL.Path)
			assert.Equal(t, "31.230000,121.470000", r.URL.Query().Get("origin"))
			assert.Equal(t, "31.250000,121.500000", r.URL.Query().Get("destination"))
			_, _ = w.Write([]byte(`{"status":0,"result":{"routes":[{"distance":4200},{"distance":5100}]}}`))
		})

		got, err := c.Route(t.Context(), origin, dest)

		require.NoError(t, err)
		assert.Equal(t, ports.RouteResult{Status: "0", DistanceMeters: 4200}, got)
	})

	t.Run("no routes", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":0,"result":{"routes":[]}}`))
		})

		_, err := c.Route(t.Context(), origin, dest)

		require.Error(t, err)
	})

	t.Run("route failure status", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":2}`))
		})

		got, err := c.Route(t.Context(), origin, dest)

		require.NoError(t, err)
		assert.Equal(t, "2", got.Status)
	})
}
