// Package geo is an HTTP client for the map service that geocodes addresses
// and plans driving routes.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"

	"github.com/sethvargo/go-retry"
)

const (
	geocodePath = "/geocoding/v3"
	routePath   = "/directionlite/v1/driving"

	defaultTimeout = 5 * time.Second
	defaultRetries = 2
)

type Config struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
	Retries   uint64
}

// Client implements ports.GeoLookup. Transport failures and 5xx answers are
// retried with exponential backoff; the service's own status codes are not.
type Client struct {
	baseURL   string
	accessKey string
	http      *http.Client
	retries   uint64
	backoff   time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("geo base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("geo base url: %w", err)
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("geo access key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		accessKey: cfg.AccessKey,
		http:      &http.Client{Timeout: cfg.Timeout},
		retries:   cfg.Retries,
		backoff:   100 * time.Millisecond,
	}, nil
}

type geocodeResponse struct {
	Status status `json:"status"`
	Result struct {
		Location struct {
			Lng float64 `json:"lng"`
			Lat float64 `json:"lat"`
		} `json:"location"`
	} `json:"result"`
}

type routeResponse struct {
	Status status `json:"status"`
	Result struct {
		Routes []struct {
			Distance int `json:"distance"`
		} `json:"routes"`
	} `json:"result"`
}

func (c *Client) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	q := url.Values{}
	q.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, geocodePath, q, &resp); err != nil {
		return ports.GeocodeResult{}, err
	}
	if string(resp.Status) != ports.GeoStatusOK {
		return ports.GeocodeResult{Status: string(resp.Status)}, nil
	}

	loc, err := kernel.NewCoordinate(resp.Result.Location.Lat, resp.Result.Location.Lng)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	return ports.GeocodeResult{Status: ports.GeoStatusOK, Location: loc}, nil
}

func (c *Client) Route(ctx context.Context, origin, destination kernel.Coordinate) (ports.RouteResult, error) {
	q := url.Values{}
	q.Set("origin", latLng(origin))
	q.Set("destination", latLng(destination))
	q.Set("steps_info", "0")

	var resp routeResponse
	if err := c.get(ctx, routePath, q, &resp); err != nil {
		return ports.RouteResult{}, err
	}
	if string(resp.Status) != ports.GeoStatusOK {
		return ports.RouteResult{Status: string(resp.Status)}, nil
	}
	if len(resp.Result.Routes) == 0 {
		return ports.RouteResult{}, errors.New("route answer has no routes")
	}
	return ports.RouteResult{Status: ports.GeoStatusOK, DistanceMeters: resp.Result.Routes[0].Distance}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("output", "json")
	q.Set("ak", c.accessKey)
	target := c.baseURL + path + "?" + q.Encode()

	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		res, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer res.Body.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		if err != nil {
			return retry.RetryableError(err)
		}
		if res.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("%s answered %d", path, res.StatusCode))
		}
		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("%s answered %d", path, res.StatusCode)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	})
}

func latLng(c kernel.Coordinate) string {
	return strconv.FormatFloat(c.Lat(), 'f', 6, 64) + "," + strconv.FormatFloat(c.Lng(), 'f', 6, 64)
}

// status accepts both 0 and "0" since the service is inconsistent about it.
type status string

func (s *status) UnmarshalJSON(b []byte) error {
	*s = status(bytes.Trim(b, `"`))
	return nil
}
