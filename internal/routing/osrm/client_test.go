package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndungtse/driver-x/internal/resilience"
	"github.com/ndungtse/driver-x/internal/routing"
	"github.com/ndungtse/driver-x/pkg/geo"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL: serverURL,
		HTTPClient: resilience.NewClient(resilience.Config{
			Name:            "osrm-test",
			MaxRetries:      1,
			InitialInterval: time.Millisecond,
		}),
		Logger: zerolog.Nop(),
	})
}

func testRequest() routing.DirectionsRequest {
	return routing.DirectionsRequest{
		Origin:      geo.Point{Lat: 34.05, Lon: -118.24},
		Destination: geo.Point{Lat: 36.17, Lon: -115.14},
	}
}

func TestDirections(t *testing.T) {
	polyline := geo.EncodePolyline([]geo.Point{
		{Lat: 34.05, Lon: -118.24},
		{Lat: 35.0, Lon: -117.0},
		{Lat: 36.17, Lon: -115.14},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/driving/")
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))

		w.Header().Set("Content-Type", "application/json")
		resp := `{"code":"Ok","routes":[{"geometry":"` + polyline + `","distance":434523.8,"duration":14400}]}`
		_, _ = w.Write([]byte(resp))
	}))
	defer server.Close()

	route, err := newTestClient(server.URL).Directions(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "osrm", route.Provider)
	assert.Len(t, route.Path, 3)
	assert.InDelta(t, 270.0, route.DistanceMiles, 1.0)
	assert.InDelta(t, 4.0, route.DurationHours, 0.001)
	assert.InDelta(t, 34.05, route.Bounds.MinLat, 0.001)
	assert.InDelta(t, -115.14, route.Bounds.MaxLon, 0.001)
}

func TestDirectionsNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points","routes":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Directions(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrNoRouteFound)

	var routingErr *routing.Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, "NoRoute", routingErr.Code)
}

func TestDirectionsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Directions(context.Background(), testRequest())
	assert.ErrorIs(t, err, routing.ErrRateLimitExceeded)
}

func TestDirectionsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Directions(context.Background(), testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrProviderUnavailable)

	var routingErr *routing.Error
	require.ErrorAs(t, err, &routingErr)
	assert.True(t, routingErr.IsRetryable())
}

func TestDirectionsBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Directions(context.Background(), testRequest())
	require.Error(t, err)

	var routingErr *routing.Error
	require.ErrorAs(t, err, &routingErr)
	assert.Equal(t, "DECODE_FAILED", routingErr.Code)
}
