package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndungtse/driver-x/internal/api/models"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/routing"
	"github.com/ndungtse/driver-x/pkg/geo"
)

type fakeLogbook struct {
	ensured        []string
	latest         *logbook.Activity
	latestErr      error
	drivingMinutes int
}

func (f *fakeLogbook) EnsureLogForDate(_ context.Context, tripID string, date time.Time, _, _, _ string) (*models.DailyLog, error) {
	f.ensured = append(f.ensured, tripID+":"+date.Format("2006-01-02"))
	return &models.DailyLog{ID: "log_test", TripID: tripID}, nil
}

func (f *fakeLogbook) LatestActivity(_ context.Context, _ string) (*logbook.Activity, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeLogbook) DrivingMinutes(_ context.Context, _ string) (int, error) {
	return f.drivingMinutes, nil
}

type fakeRouter struct {
	route *routing.Route
	err   error
	calls int
}

func (f *fakeRouter) Directions(_ context.Context, _ routing.DirectionsRequest) (*routing.Route, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.route, nil
}

func ptr(v float64) *float64 { return &v }

func straightRoute(miles float64) *routing.Route {
	return &routing.Route{
		Polyline:      "_p~iF~ps|U",
		Path:          []geo.Point{{Lat: 40, Lon: -90}, {Lat: 41, Lon: -90}},
		DistanceMiles: miles,
		DurationHours: miles / 55,
		Provider:      "osrm",
	}
}

func createRequest() *models.TripCreateRequest {
	return &models.TripCreateRequest{
		CurrentLocation: models.TripLocation{City: "Chicago", State: "IL", Lat: ptr(41.88), Lon: ptr(-87.63)},
		PickupLocation:  models.TripLocation{City: "Joliet", State: "IL", Lat: ptr(41.53), Lon: ptr(-88.08)},
		DropoffLocation: models.TripLocation{City: "St. Louis", State: "MO", Lat: ptr(38.63), Lon: ptr(-90.20)},
		DriverName:      "Jane Doe",
		CarrierName:     "Acme Freight",
		HomeTerminal:    "Chicago, IL",
	}
}

func newTestService(t *testing.T, lb *fakeLogbook, router *fakeRouter) (*Service, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	cfg := ServiceConfig{Trips: repo}
	if lb != nil {
		cfg.Logbook = lb
	}
	if router != nil {
		cfg.Router = router
	}
	return NewService(cfg), repo
}

func TestCreateTrip(t *testing.T) {
	router := &fakeRouter{route: straightRoute(300)}
	svc, _ := newTestService(t, nil, router)

	trip, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	assert.Contains(t, trip.ID, "trp_")
	assert.Equal(t, models.TripStatusPlanning, trip.Status)
	assert.Equal(t, "Jane Doe", trip.DriverName)
	assert.InDelta(t, 300, trip.TotalDistance, 0.001)
	assert.Equal(t, 1, router.calls)
}

func TestCreateTripRouterFailureDoesNotBlock(t *testing.T) {
	router := &fakeRouter{err: routing.ErrProviderUnavailable}
	svc, _ := newTestService(t, nil, router)

	trip, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)
	assert.Zero(t, trip.TotalDistance)
}

func TestCreateTripWithoutCoordinatesSkipsRouting(t *testing.T) {
	router := &fakeRouter{route: straightRoute(300)}
	svc, _ := newTestService(t, nil, router)

	input := createRequest()
	input.CurrentLocation = models.TripLocation{City: "Chicago", State: "IL"}
	input.PickupLocation = models.TripLocation{City: "Joliet", State: "IL"}

	trip, err := svc.Create(context.Background(), "driver-1", input)
	require.NoError(t, err)
	assert.Zero(t, trip.TotalDistance)
	assert.Equal(t, 0, router.calls)
}

func TestCreateTripValidation(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	input := createRequest()
	input.DropoffLocation.Lat = ptr(91)
	input.CurrentCycleHours = -1

	_, err := svc.Create(context.Background(), "driver-1", input)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 2)
	assert.Equal(t, "dropoffLocation.lat", verr.Errors[0].Field)
	assert.Equal(t, "currentCycleHours", verr.Errors[1].Field)
}

func TestGetTripScopedToDriver(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "driver-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), "driver-2", created.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestListTrips(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	for range 3 {
		_, err := svc.Create(context.Background(), "driver-1", createRequest())
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), "driver-2", createRequest())
	require.NoError(t, err)

	page, err := svc.List(context.Background(), "driver-1", 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	require.NotNil(t, page.Meta.NextCursor)
}

func TestUpdateTrip(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	name := "John Smith"
	hours := 12.5
	updated, err := svc.Update(context.Background(), "driver-1", created.ID, &models.TripUpdateRequest{
		DriverName:        &name,
		CurrentCycleHours: &hours,
	})
	require.NoError(t, err)
	assert.Equal(t, "John Smith", updated.DriverName)
	assert.Equal(t, 12.5, updated.CurrentCycleHours)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Acme Freight", updated.CarrierName)
}

func TestDeleteTrip(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), "driver-2", created.ID), ErrTripNotFound)
	require.NoError(t, svc.Delete(context.Background(), "driver-1", created.ID))

	_, err = svc.Get(context.Background(), "driver-1", created.ID)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestStartTrip(t *testing.T) {
	lb := &fakeLogbook{}
	svc, _ := newTestService(t, lb, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	started, err := svc.Start(context.Background(), "driver-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusInProgress, started.Status)
	require.NotNil(t, started.StartDatetime)
	require.Len(t, lb.ensured, 1)
	assert.Contains(t, lb.ensured[0], created.ID)

	_, err = svc.Start(context.Background(), "driver-1", created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteTrip(t *testing.T) {
	svc, _ := newTestService(t, &fakeLogbook{}, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	// Completing a planning trip is not allowed.
	_, err = svc.Complete(context.Background(), "driver-1", created.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Start(context.Background(), "driver-1", created.ID)
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), "driver-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, completed.Status)
	require.NotNil(t, completed.EndDatetime)
}

func TestComputeRoutePlan(t *testing.T) {
	router := &fakeRouter{route: straightRoute(1200)}
	svc, repo := newTestService(t, nil, router)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	plan, err := svc.ComputeRoutePlan(context.Background(), "driver-1", created.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1200, plan.Route.DistanceMiles, 0.001)
	assert.Len(t, plan.FuelStops, 1)
	assert.Len(t, plan.RestStops, 1)

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1200, stored.TotalDistance, 0.001)
}

func TestComputeRoutePlanWithoutCoordinates(t *testing.T) {
	svc, _ := newTestService(t, nil, &fakeRouter{route: straightRoute(300)})

	input := createRequest()
	input.CurrentLocation = models.TripLocation{City: "Chicago", State: "IL"}
	input.PickupLocation = models.TripLocation{City: "Joliet", State: "IL"}
	input.DropoffLocation = models.TripLocation{City: "St. Louis", State: "MO"}

	created, err := svc.Create(context.Background(), "driver-1", input)
	require.NoError(t, err)

	_, err = svc.ComputeRoutePlan(context.Background(), "driver-1", created.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestComputeRoutePlanProviderError(t *testing.T) {
	svc, _ := newTestService(t, nil, &fakeRouter{err: routing.ErrProviderUnavailable})

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	_, err = svc.ComputeRoutePlan(context.Background(), "driver-1", created.ID)
	assert.ErrorIs(t, err, routing.ErrProviderUnavailable)
}

func TestRefreshDerived(t *testing.T) {
	lb := &fakeLogbook{
		latest: &logbook.Activity{
			Status:   logbook.StatusDriving,
			Location: logbook.Location{City: "Springfield", State: "IL"},
			EndLocation: &logbook.Location{
				City: "St. Louis", State: "MO", Lat: ptr(38.63), Lon: ptr(-90.20),
			},
		},
		drivingMinutes: 150,
	}
	svc, repo := newTestService(t, lb, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RefreshDerived(context.Background(), created.ID))

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "St. Louis", stored.CurrentLocation.City)
	assert.Equal(t, "MO", stored.CurrentLocation.State)
	assert.InDelta(t, 2.5, stored.CurrentCycleHours, 0.001)
}

func TestRefreshDerivedNoActivities(t *testing.T) {
	lb := &fakeLogbook{latestErr: logbook.ErrActivityNotFound}
	svc, repo := newTestService(t, lb, nil)

	created, err := svc.Create(context.Background(), "driver-1", createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RefreshDerived(context.Background(), created.ID))

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicago", stored.CurrentLocation.City)
}

func TestRefreshDerivedUnknownTrip(t *testing.T) {
	svc, _ := newTestService(t, &fakeLogbook{}, nil)
	err := svc.RefreshDerived(context.Background(), "trp_missing")
	assert.True(t, errors.Is(err, ErrTripNotFound))
}
