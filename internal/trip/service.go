package trip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndungtse/driver-x/internal/api/models"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/routing"
	"github.com/ndungtse/driver-x/internal/stops"
)

// Logbook is the slice of the logbook service the trip service needs.
type Logbook interface {
	// EnsureLogForDate returns the trip's log for a date, creating one when
	// absent.
	EnsureLogForDate(ctx context.Context, tripID string, date time.Time, driverName, homeTerminal, carrierName string) (*models.DailyLog, error)
	// LatestActivity returns the most recent activity across a trip's logs.
	LatestActivity(ctx context.Context, tripID string) (*logbook.Activity, error)
	// DrivingMinutes sums driving time across a trip's logs.
	DrivingMinutes(ctx context.Context, tripID string) (int, error)
}

// Router computes driving routes between two points.
type Router interface {
	Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Route, error)
}

// ServiceConfig configures the trip service.
type ServiceConfig struct {
	Trips   Repository
	Logbook Logbook
	Router  Router
	Planner *stops.Planner
	Logger  zerolog.Logger
}

// Service provides trip operations.
type Service struct {
	trips   Repository
	logbook Logbook
	router  Router
	planner *stops.Planner
	logger  zerolog.Logger
}

// NewService creates a new trip service.
func NewService(cfg ServiceConfig) *Service {
	planner := cfg.Planner
	if planner == nil {
		planner = stops.NewPlanner(stops.DefaultPlannerConfig())
	}
	return &Service{
		trips:   cfg.Trips,
		logbook: cfg.Logbook,
		router:  cfg.Router,
		planner: planner,
		logger:  cfg.Logger,
	}
}

// List retrieves a driver's trips, newest first.
func (s *Service) List(ctx context.Context, driverID string, limit int) (*models.PagedTrips, error) {
	result, err := s.trips.List(ctx, driverID, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]models.Trip, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, s.toAPITrip(t))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	return &models.PagedTrips{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:      limit,
			NextCursor: nextCursor,
		},
	}, nil
}

// Get retrieves a trip by ID for a driver.
func (s *Service) Get(ctx context.Context, driverID, tripID string) (*models.Trip, error) {
	trip, err := s.trips.GetByDriverAndID(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}
	result := s.toAPITrip(trip)
	return &result, nil
}

// Create creates a new trip in the planning state. When both endpoints carry
// coordinates the route is computed up front to estimate distance and
// duration; a provider failure never blocks creation.
func (s *Service) Create(ctx context.Context, driverID string, input *models.TripCreateRequest) (*models.Trip, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	trip := &Trip{
		ID:                "trp_" + uuid.New().String()[:22],
		DriverID:          driverID,
		Status:            StatusPlanning,
		CurrentLocation:   fromAPILocation(input.CurrentLocation),
		PickupLocation:    fromAPILocation(input.PickupLocation),
		DropoffLocation:   fromAPILocation(input.DropoffLocation),
		DriverName:        input.DriverName,
		CarrierName:       input.CarrierName,
		HomeTerminal:      input.HomeTerminal,
		CurrentCycleHours: input.CurrentCycleHours,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if route, err := s.computeRoute(ctx, trip); err == nil && route != nil {
		trip.TotalDistance = route.DistanceMiles
		trip.EstimatedDuration = route.DurationHours
	} else if err != nil {
		s.logger.Warn().Err(err).
			Str("trip_id", trip.ID).
			Msg("route estimation failed during trip creation")
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// Update updates a trip's locations and header fields.
func (s *Service) Update(ctx context.Context, driverID, tripID string, input *models.TripUpdateRequest) (*models.Trip, error) {
	trip, err := s.trips.GetByDriverAndID(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.CurrentLocation != nil {
		trip.CurrentLocation = fromAPILocation(*input.CurrentLocation)
	}
	if input.PickupLocation != nil {
		trip.PickupLocation = fromAPILocation(*input.PickupLocation)
	}
	if input.DropoffLocation != nil {
		trip.DropoffLocation = fromAPILocation(*input.DropoffLocation)
	}
	if input.CurrentCycleHours != nil {
		trip.CurrentCycleHours = *input.CurrentCycleHours
	}
	if input.DriverName != nil {
		trip.DriverName = *input.DriverName
	}
	if input.CarrierName != nil {
		trip.CarrierName = *input.CarrierName
	}
	if input.HomeTerminal != nil {
		trip.HomeTerminal = *input.HomeTerminal
	}
	trip.UpdatedAt = time.Now()

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// Delete deletes a trip for a driver.
func (s *Service) Delete(ctx context.Context, driverID, tripID string) error {
	if _, err := s.trips.GetByDriverAndID(ctx, driverID, tripID); err != nil {
		return err
	}
	return s.trips.Delete(ctx, tripID)
}

// Start moves a planning trip into progress, stamps the start time and
// opens today's daily log with the trip's driver header fields.
func (s *Service) Start(ctx context.Context, driverID, tripID string) (*models.Trip, error) {
	trip, err := s.trips.GetByDriverAndID(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != StatusPlanning {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	trip.Status = StatusInProgress
	trip.StartDatetime = &now
	trip.UpdatedAt = now

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	if s.logbook != nil {
		if _, err := s.logbook.EnsureLogForDate(ctx, trip.ID, now, trip.DriverName, trip.HomeTerminal, trip.CarrierName); err != nil {
			s.logger.Error().Err(err).
				Str("trip_id", trip.ID).
				Msg("failed to open daily log on trip start")
		}
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// Complete moves an in-progress trip to completed and stamps the end time.
func (s *Service) Complete(ctx context.Context, driverID, tripID string) (*models.Trip, error) {
	trip, err := s.trips.GetByDriverAndID(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != StatusInProgress {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	trip.Status = StatusCompleted
	trip.EndDatetime = &now
	trip.UpdatedAt = now

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	result := s.toAPITrip(trip)
	return &result, nil
}

// ComputeRoutePlan computes the trip's route and derives its required fuel
// and rest stops. The trip's distance and duration estimates are refreshed
// with the result. Routes are not persisted; the computation is idempotent.
func (s *Service) ComputeRoutePlan(ctx context.Context, driverID, tripID string) (*models.RoutePlan, error) {
	trip, err := s.trips.GetByDriverAndID(ctx, driverID, tripID)
	if err != nil {
		return nil, err
	}

	route, err := s.computeRoute(ctx, trip)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, &ValidationError{Errors: []models.FieldError{
			{Field: "dropoffLocation", Message: "pickup and dropoff coordinates are required to compute a route"},
		}}
	}

	trip.TotalDistance = route.DistanceMiles
	trip.EstimatedDuration = route.DurationHours
	trip.UpdatedAt = time.Now()
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}

	plan := s.planner.Plan(route.Path, route.DistanceMiles)

	return &models.RoutePlan{
		Route:     toAPIRoute(route),
		FuelStops: toAPIStops(plan.FuelStops),
		RestStops: toAPIStops(plan.RestStops),
	}, nil
}

// RefreshDerived recomputes the trip's derived fields from its logbook: the
// current location comes from the latest activity and the cycle hours from
// summed driving time. Used by the background worker after activity writes.
func (s *Service) RefreshDerived(ctx context.Context, tripID string) error {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return err
	}
	if s.logbook == nil {
		return nil
	}

	changed := false

	latest, err := s.logbook.LatestActivity(ctx, tripID)
	switch {
	case err == nil:
		loc := latest.Location
		if latest.EndLocation != nil {
			loc = *latest.EndLocation
		}
		trip.CurrentLocation = Location{
			Name:  loc.Address,
			City:  loc.City,
			State: loc.State,
			Lat:   loc.Lat,
			Lon:   loc.Lon,
		}
		changed = true
	case errors.Is(err, logbook.ErrActivityNotFound):
		// No activities yet; nothing to derive.
	default:
		return err
	}

	minutes, err := s.logbook.DrivingMinutes(ctx, tripID)
	if err != nil {
		return err
	}
	if hours := float64(minutes) / 60; hours != trip.CurrentCycleHours {
		trip.CurrentCycleHours = hours
		changed = true
	}

	if !changed {
		return nil
	}

	trip.UpdatedAt = time.Now()
	if err := s.trips.Update(ctx, trip); err != nil {
		return err
	}

	s.logger.Debug().
		Str("trip_id", tripID).
		Float64("cycle_hours", trip.CurrentCycleHours).
		Msg("trip derived fields refreshed")
	return nil
}

// ListInProgressIDs returns the IDs of every in-progress trip, across
// drivers. Used by the background worker's bulk refresh.
func (s *Service) ListInProgressIDs(ctx context.Context) ([]string, error) {
	return s.trips.ListIDsByStatus(ctx, StatusInProgress)
}

// computeRoute picks routable endpoints and asks the router for directions.
// Returns (nil, nil) when the trip lacks coordinates or no router is wired.
func (s *Service) computeRoute(ctx context.Context, trip *Trip) (*routing.Route, error) {
	if s.router == nil {
		return nil, nil
	}

	origin := trip.CurrentLocation
	if !origin.HasCoordinates() {
		origin = trip.PickupLocation
	}
	if !origin.HasCoordinates() || !trip.DropoffLocation.HasCoordinates() {
		return nil, nil
	}

	return s.router.Directions(ctx, routing.DirectionsRequest{
		Origin:      origin.Point(),
		Destination: trip.DropoffLocation.Point(),
	})
}

// validateCreateInput validates the create trip input.
func validateCreateInput(input *models.TripCreateRequest) []models.FieldError {
	var errs []models.FieldError
	errs = append(errs, validateLocation(&input.CurrentLocation, "currentLocation")...)
	errs = append(errs, validateLocation(&input.PickupLocation, "pickupLocation")...)
	errs = append(errs, validateLocation(&input.DropoffLocation, "dropoffLocation")...)
	if input.CurrentCycleHours < 0 {
		errs = append(errs, models.FieldError{Field: "currentCycleHours", Message: "must not be negative"})
	}
	return errs
}

// validateUpdateInput validates the update trip input.
func validateUpdateInput(input *models.TripUpdateRequest) []models.FieldError {
	var errs []models.FieldError
	errs = append(errs, validateLocation(input.CurrentLocation, "currentLocation")...)
	errs = append(errs, validateLocation(input.PickupLocation, "pickupLocation")...)
	errs = append(errs, validateLocation(input.DropoffLocation, "dropoffLocation")...)
	if input.CurrentCycleHours != nil && *input.CurrentCycleHours < 0 {
		errs = append(errs, models.FieldError{Field: "currentCycleHours", Message: "must not be negative"})
	}
	return errs
}

// validateLocation checks coordinate ranges of an optional location.
func validateLocation(loc *models.TripLocation, prefix string) []models.FieldError {
	if loc == nil {
		return nil
	}

	var errs []models.FieldError
	if loc.Lat != nil && (*loc.Lat < -90 || *loc.Lat > 90) {
		errs = append(errs, models.FieldError{Field: prefix + ".lat", Message: "must be between -90 and 90"})
	}
	if loc.Lon != nil && (*loc.Lon < -180 || *loc.Lon > 180) {
		errs = append(errs, models.FieldError{Field: prefix + ".lon", Message: "must be between -180 and 180"})
	}
	return errs
}

// toAPITrip converts a domain Trip to an API Trip.
func (s *Service) toAPITrip(t *Trip) models.Trip {
	result := models.Trip{
		ID:                t.ID,
		Status:            models.TripStatus(t.Status),
		DriverName:        t.DriverName,
		CarrierName:       t.CarrierName,
		HomeTerminal:      t.HomeTerminal,
		CurrentLocation:   toAPILocation(t.CurrentLocation),
		PickupLocation:    toAPILocation(t.PickupLocation),
		DropoffLocation:   toAPILocation(t.DropoffLocation),
		CurrentCycleHours: t.CurrentCycleHours,
		TotalDistance:     t.TotalDistance,
		EstimatedDuration: t.EstimatedDuration,
		CreatedAt:         models.Timestamp(t.CreatedAt),
		UpdatedAt:         models.Timestamp(t.UpdatedAt),
	}
	if t.StartDatetime != nil {
		ts := models.Timestamp(*t.StartDatetime)
		result.StartDatetime = &ts
	}
	if t.EndDatetime != nil {
		ts := models.Timestamp(*t.EndDatetime)
		result.EndDatetime = &ts
	}
	return result
}

func toAPILocation(loc Location) models.TripLocation {
	return models.TripLocation{
		Name:  loc.Name,
		City:  loc.City,
		State: loc.State,
		Lat:   loc.Lat,
		Lon:   loc.Lon,
	}
}

func fromAPILocation(loc models.TripLocation) Location {
	return Location{
		Name:  loc.Name,
		City:  loc.City,
		State: loc.State,
		Lat:   loc.Lat,
		Lon:   loc.Lon,
	}
}

func toAPIRoute(route *routing.Route) models.Route {
	path := make([]models.Point, 0, len(route.Path))
	for _, p := range route.Path {
		path = append(path, models.Point{Lat: p.Lat, Lon: p.Lon})
	}
	return models.Route{
		Polyline:      route.Polyline,
		Path:          path,
		DistanceMiles: route.DistanceMiles,
		DurationHours: route.DurationHours,
		BoundingBox: models.GeoBox{
			MinLat: route.Bounds.MinLat,
			MinLon: route.Bounds.MinLon,
			MaxLat: route.Bounds.MaxLat,
			MaxLon: route.Bounds.MaxLon,
		},
		Provider: route.Provider,
	}
}

func toAPIStops(items []stops.RequiredStop) []models.RequiredStop {
	result := make([]models.RequiredStop, 0, len(items))
	for _, stop := range items {
		result = append(result, models.RequiredStop{
			Type:           string(stop.Type),
			Location:       models.Point{Lat: stop.Location.Lat, Lon: stop.Location.Lon},
			MilesFromStart: stop.MilesFromStart,
			DurationHours:  stop.DurationHours,
			Reason:         stop.Reason,
		})
	}
	return result
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
