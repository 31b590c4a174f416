// Package osrm implements the routing.Provider interface against an
// OSRM-compatible HTTP API.
package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndungtse/driver-x/internal/resilience"
	"github.com/ndungtse/driver-x/internal/routing"
	"github.com/ndungtse/driver-x/pkg/geo"
)

const providerName = "osrm"

// metersPerMile converts OSRM distances into miles.
const metersPerMile = 1609.34

// ClientConfig holds configuration for the OSRM client.
type ClientConfig struct {
	// BaseURL is the OSRM server base URL, e.g. "https://router.project-osrm.org".
	BaseURL string

	// HTTPClient is the resilient client used for requests. Nil gets a
	// default one.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client calls an OSRM-compatible routing server.
type Client struct {
	baseURL string
	http    *resilience.Client
	logger  zerolog.Logger
}

// NewClient creates a new OSRM client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultConfig(providerName))
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    httpClient,
		logger:  cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return providerName
}

// routeResponse is the subset of the OSRM route response we consume.
type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Directions retrieves a driving route between two points.
func (c *Client) Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Route, error) {
	// OSRM takes lon,lat pairs.
	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f",
		c.baseURL,
		req.Origin.Lon, req.Origin.Lat,
		req.Destination.Lon, req.Destination.Lat,
	)

	query := url.Values{}
	query.Set("overview", "full")
	query.Set("geometries", "polyline")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &routing.Error{
			Provider: providerName,
			Code:     "REQUEST_BUILD_FAILED",
			Message:  "failed to build request",
			Err:      err,
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return nil, &routing.Error{
				Provider: providerName,
				Code:     "CIRCUIT_OPEN",
				Message:  "circuit breaker open",
				Err:      routing.ErrProviderUnavailable,
			}
		}
		return nil, &routing.Error{
			Provider: providerName,
			Code:     "REQUEST_FAILED",
			Message:  "request failed",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &routing.Error{
			Provider: providerName,
			Code:     "RATE_LIMITED",
			Message:  "provider rate limit exceeded",
			Err:      routing.ErrRateLimitExceeded,
		}
	case resp.StatusCode >= 500:
		return nil, &routing.Error{
			Provider: providerName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  "provider server error",
			Err:      routing.ErrProviderUnavailable,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &routing.Error{
			Provider: providerName,
			Code:     "READ_FAILED",
			Message:  "failed to read response body",
			Err:      err,
		}
	}

	var decoded routeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &routing.Error{
			Provider: providerName,
			Code:     "DECODE_FAILED",
			Message:  "failed to decode response",
			Err:      err,
		}
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		c.logger.Debug().
			Str("code", decoded.Code).
			Str("message", decoded.Message).
			Msg("osrm returned no route")
		return nil, &routing.Error{
			Provider: providerName,
			Code:     decoded.Code,
			Message:  "no route in response",
			Err:      routing.ErrNoRouteFound,
		}
	}

	best := decoded.Routes[0]
	path := geo.DecodePolyline(best.Geometry)
	bounds, _ := geo.PathBounds(path)

	return &routing.Route{
		Polyline:      best.Geometry,
		Path:          path,
		DistanceMiles: best.Distance / metersPerMile,
		DurationHours: best.Duration / 3600,
		Bounds:        bounds,
		Provider:      providerName,
		FetchedAt:     time.Now(),
	}, nil
}

// Ensure Client implements the Provider interface.
var _ routing.Provider = (*Client)(nil)
