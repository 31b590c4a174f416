package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndungtse/driver-x/internal/api/models"
	"github.com/ndungtse/driver-x/internal/api/response"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/trip"
)

// JobPublisher enqueues background jobs after logbook mutations. Publishing
// is best effort; a failed publish never fails the request.
type JobPublisher interface {
	PublishTripRefresh(ctx context.Context, tripID string) error
}

// DailyLogHandler handles daily log endpoints.
type DailyLogHandler struct {
	logbook *logbook.Service
	trips   *trip.Service
}

// NewDailyLogHandler creates a new DailyLogHandler.
func NewDailyLogHandler(logbookService *logbook.Service, tripService *trip.Service) *DailyLogHandler {
	return &DailyLogHandler{
		logbook: logbookService,
		trips:   tripService,
	}
}

// authorizeLog loads a log and verifies it belongs to one of the driver's
// trips. Logs of other drivers read as not found.
func authorizeLog(ctx context.Context, logbookService *logbook.Service, tripService *trip.Service, driverID, logID string) (*models.DailyLog, error) {
	log, err := logbookService.GetLog(ctx, logID)
	if err != nil {
		return nil, err
	}
	if _, err := tripService.Get(ctx, driverID, log.TripID); err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			return nil, logbook.ErrLogNotFound
		}
		return nil, err
	}
	return log, nil
}

// ListLogs handles GET /v1/trips/{tripId}/logs - list a trip's daily logs.
func (h *DailyLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	if _, err := h.trips.Get(r.Context(), driverID, tripID); err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return
		}
		response.InternalError(w, r, "failed to list logs")
		return
	}

	items, err := h.logbook.ListLogs(r.Context(), tripID)
	if err != nil {
		response.InternalError(w, r, "failed to list logs")
		return
	}

	response.JSON(w, r, http.StatusOK, models.PagedDailyLogs{
		Items: items,
		Meta:  models.PagedResponseMeta{Limit: len(items)},
	})
}

// CreateLog handles POST /v1/trips/{tripId}/logs - create a daily log.
func (h *DailyLogHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	tripID := chi.URLParam(r, "tripId")

	if _, err := h.trips.Get(r.Context(), driverID, tripID); err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			response.NotFound(w, r, "trip not found")
			return
		}
		response.InternalError(w, r, "failed to create log")
		return
	}

	var input models.DailyLogCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.logbook.CreateLog(r.Context(), tripID, &input)
	if err != nil {
		var verr *logbook.ValidationError
		switch {
		case errors.As(err, &verr):
			response.BadRequest(w, r, "validation error", verr.Errors)
		case errors.Is(err, logbook.ErrDuplicateLogDate):
			response.Conflict(w, r, "a daily log already exists for this date")
		default:
			response.InternalError(w, r, "failed to create log")
		}
		return
	}

	location := fmt.Sprintf("/v1/logs/%s", created.ID)
	response.Created(w, r, location, created)
}

// GetLog handles GET /v1/logs/{logId} - get a daily log.
func (h *DailyLogHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	logID := chi.URLParam(r, "logId")

	log, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, logID)
	if err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			response.NotFound(w, r, "daily log not found")
			return
		}
		response.InternalError(w, r, "failed to get log")
		return
	}

	response.JSON(w, r, http.StatusOK, log)
}

// UpdateLog handles PUT /v1/logs/{logId} - update a daily log's header.
func (h *DailyLogHandler) UpdateLog(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	logID := chi.URLParam(r, "logId")

	if _, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, logID); err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			response.NotFound(w, r, "daily log not found")
			return
		}
		response.InternalError(w, r, "failed to update log")
		return
	}

	var input models.DailyLogUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	updated, err := h.logbook.UpdateLog(r.Context(), logID, &input)
	if err != nil {
		response.InternalError(w, r, "failed to update log")
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteLog handles DELETE /v1/logs/{logId} - delete a daily log with its
// activities.
func (h *DailyLogHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	logID := chi.URLParam(r, "logId")

	if _, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, logID); err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			response.NotFound(w, r, "daily log not found")
			return
		}
		response.InternalError(w, r, "failed to delete log")
		return
	}

	if err := h.logbook.DeleteLog(r.Context(), logID); err != nil {
		response.InternalError(w, r, "failed to delete log")
		return
	}

	response.NoContent(w, r)
}
