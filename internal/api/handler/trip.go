package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ndungtse/driver-x/internal/api/models"
	"github.com/ndungtse/driver-x/internal/api/response"
	"github.com/ndungtse/driver-x/internal/routing"
	"github.com/ndungtse/driver-x/internal/trip"
)

const defaultPageLimit = 50

// TripHandler handles trip endpoints.
type TripHandler struct {
	trips *trip.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

// ListTrips handles GET /v1/trips - list the driver's trips.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())

	limit := defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			response.BadRequest(w, r, "limit must be an integer between 1 and 200", nil)
			return
		}
		limit = parsed
	}

	page, err := h.trips.List(r.Context(), driverID, limit)
	if err != nil {
		response.InternalError(w, r, "failed to list trips")
		return
	}

	response.JSON(w, r, http.StatusOK, page)
}

// CreateTrip handles POST /v1/trips - create a trip.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())

	var input models.TripCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.trips.Create(r.Context(), driverID, &input)
	if err != nil {
		var verr *trip.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, r, "validation error", verr.Errors)
			return
		}
		response.InternalError(w, r, "failed to create trip")
		return
	}

	location := fmt.Sprintf("/v1/trips/%s", created.ID)
	response.Created(w, r, location, created)
}

// GetTrip handles GET /v1/trips/{tripId} - get a trip.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	result, err := h.trips.Get(r.Context(), driverID, tripID)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return
		}
		response.InternalError(w, r, "failed to get trip")
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// UpdateTrip handles PUT /v1/trips/{tripId} - update a trip.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	var input models.TripUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	updated, err := h.trips.Update(r.Context(), driverID, tripID, &input)
	if err != nil {
		var verr *trip.ValidationError
		switch {
		case errors.Is(err, trip.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		case errors.As(err, &verr):
			response.BadRequest(w, r, "validation error", verr.Errors)
		default:
			response.InternalError(w, r, "failed to update trip")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /v1/trips/{tripId} - delete a trip.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	if err := h.trips.Delete(r.Context(), driverID, tripID); err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return
		}
		response.InternalError(w, r, "failed to delete trip")
		return
	}

	response.NoContent(w, r)
}

// StartTrip handles POST /v1/trips/{tripId}/start - move a trip in progress.
func (h *TripHandler) StartTrip(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	started, err := h.trips.Start(r.Context(), driverID, tripID)
	if err != nil {
		switch {
		case errors.Is(err, trip.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		case errors.Is(err, trip.ErrInvalidTransition):
			response.Conflict(w, r, "only a planning trip can be started")
		default:
			response.InternalError(w, r, "failed to start trip")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, started)
}

// CompleteTrip handles POST /v1/trips/{tripId}/complete - complete a trip.
func (h *TripHandler) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	completed, err := h.trips.Complete(r.Context(), driverID, tripID)
	if err != nil {
		switch {
		case errors.Is(err, trip.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		case errors.Is(err, trip.ErrInvalidTransition):
			response.Conflict(w, r, "only an in-progress trip can be completed")
		default:
			response.InternalError(w, r, "failed to complete trip")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, completed)
}

// ComputeRoute handles POST /v1/trips/{tripId}/route:compute - compute the
// trip's route with required fuel and rest stops.
func (h *TripHandler) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	plan, err := h.trips.ComputeRoutePlan(r.Context(), driverID, tripID)
	if err != nil {
		var verr *trip.ValidationError
		switch {
		case errors.Is(err, trip.ErrTripNotFound):
			response.NotFound(w, r, "trip not found")
		case errors.As(err, &verr):
			response.BadRequest(w, r, "validation error", verr.Errors)
		case errors.Is(err, routing.ErrNoRouteFound):
			response.BadRequest(w, r, "no drivable route found between the trip endpoints", nil)
		case errors.Is(err, routing.ErrInvalidCoordinates):
			response.BadRequest(w, r, "trip endpoints have invalid coordinates", nil)
		case errors.Is(err, routing.ErrProviderUnavailable), errors.Is(err, routing.ErrRateLimitExceeded):
			response.ServiceUnavailable(w, r, "routing provider is unavailable, try again later")
		default:
			response.InternalError(w, r, "failed to compute route")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, plan)
}
