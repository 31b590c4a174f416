package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ndungtse/driver-x/internal/api/models"
	"github.com/ndungtse/driver-x/internal/api/response"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/trip"
)

// ActivityHandler handles activity endpoints. Mutations enqueue a trip
// refresh job so derived trip fields catch up out of band.
type ActivityHandler struct {
	logbook *logbook.Service
	trips   *trip.Service
	jobs    JobPublisher
	logger  zerolog.Logger
}

// NewActivityHandler creates a new ActivityHandler. The job publisher is
// optional; without one derived trip fields are only refreshed on demand.
func NewActivityHandler(logbookService *logbook.Service, tripService *trip.Service, jobs JobPublisher, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		logbook: logbookService,
		trips:   tripService,
		jobs:    jobs,
		logger:  logger,
	}
}

// ListActivities handles GET /v1/logs/{logId}/activities.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	logID := chi.URLParam(r, "logId")

	if _, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, logID); err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			response.NotFound(w, r, "daily log not found")
			return
		}
		response.InternalError(w, r, "failed to list activities")
		return
	}

	items, err := h.logbook.ListActivities(r.Context(), logID)
	if err != nil {
		response.InternalError(w, r, "failed to list activities")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ActivityList{Items: items})
}

// CreateActivity handles POST /v1/logs/{logId}/activities - insert an
// activity into the day's timeline.
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	logID := chi.URLParam(r, "logId")

	log, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, logID)
	if err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			response.NotFound(w, r, "daily log not found")
			return
		}
		response.InternalError(w, r, "failed to create activity")
		return
	}

	var input models.ActivityCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	created, err := h.logbook.InsertActivity(r.Context(), logID, &input)
	if err != nil {
		var verr *logbook.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, r, "validation error", verr.Errors)
			return
		}
		response.InternalError(w, r, "failed to create activity")
		return
	}

	h.enqueueTripRefresh(r, log.TripID)

	location := fmt.Sprintf("/v1/activities/%s", created.ID)
	response.Created(w, r, location, created)
}

// UpdateActivity handles PUT /v1/activities/{activityId}.
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	activityID := chi.URLParam(r, "activityId")

	log, err := h.authorizeActivity(r, driverID, activityID)
	if err != nil {
		h.writeActivityError(w, r, err, "failed to update activity")
		return
	}

	var input models.ActivityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	updated, err := h.logbook.UpdateActivity(r.Context(), activityID, &input)
	if err != nil {
		var verr *logbook.ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, r, "validation error", verr.Errors)
			return
		}
		h.writeActivityError(w, r, err, "failed to update activity")
		return
	}

	h.enqueueTripRefresh(r, log.TripID)

	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /v1/activities/{activityId}. The gap left
// behind is closed by the neighboring activity; the last activity of a day
// cannot be deleted.
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	activityID := chi.URLParam(r, "activityId")

	log, err := h.authorizeActivity(r, driverID, activityID)
	if err != nil {
		h.writeActivityError(w, r, err, "failed to delete activity")
		return
	}

	if err := h.logbook.DeleteActivity(r.Context(), activityID); err != nil {
		if errors.Is(err, logbook.ErrLastActivity) {
			response.Conflict(w, r, "the only activity of a daily log cannot be deleted")
			return
		}
		h.writeActivityError(w, r, err, "failed to delete activity")
		return
	}

	h.enqueueTripRefresh(r, log.TripID)

	response.NoContent(w, r)
}

// authorizeActivity resolves an activity's log and verifies driver ownership.
func (h *ActivityHandler) authorizeActivity(r *http.Request, driverID, activityID string) (*models.DailyLog, error) {
	activity, err := h.logbook.GetActivity(r.Context(), activityID)
	if err != nil {
		return nil, err
	}
	log, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, activity.DailyLogID)
	if err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			return nil, logbook.ErrActivityNotFound
		}
		return nil, err
	}
	return log, nil
}

func (h *ActivityHandler) writeActivityError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, logbook.ErrActivityNotFound) {
		response.NotFound(w, r, "activity not found")
		return
	}
	response.InternalError(w, r, fallback)
}

// enqueueTripRefresh publishes a trip refresh job, logging failures without
// affecting the response.
func (h *ActivityHandler) enqueueTripRefresh(r *http.Request, tripID string) {
	if h.jobs == nil {
		return
	}
	if err := h.jobs.PublishTripRefresh(r.Context(), tripID); err != nil {
		h.logger.Warn().Err(err).
			Str("trip_id", tripID).
			Msg("failed to enqueue trip refresh job")
	}
}
