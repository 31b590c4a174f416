package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndungtse/driver-x/internal/api/response"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/trip"
)

// LogbookHandler serves the assembled log sheet view.
type LogbookHandler struct {
	logbook *logbook.Service
	trips   *trip.Service
}

// NewLogbookHandler creates a new LogbookHandler.
func NewLogbookHandler(logbookService *logbook.Service, tripService *trip.Service) *LogbookHandler {
	return &LogbookHandler{
		logbook: logbookService,
		trips:   tripService,
	}
}

// GetLogbook handles GET /v1/logs/{logId}/logbook - the full view model of
// one day's log sheet: header, timeline geometry, clock totals, remarks and
// the structural validation result.
func (h *LogbookHandler) GetLogbook(w http.ResponseWriter, r *http.Request) {
	driverID := GetDriverID(r.Context())
	logID := chi.URLParam(r, "logId")

	if _, err := authorizeLog(r.Context(), h.logbook, h.trips, driverID, logID); err != nil {
		if errors.Is(err, logbook.ErrLogNotFound) {
			response.NotFound(w, r, "daily log not found")
			return
		}
		response.InternalError(w, r, "failed to load logbook")
		return
	}

	view, err := h.logbook.View(r.Context(), logID)
	if err != nil {
		response.InternalError(w, r, "failed to load logbook")
		return
	}

	response.JSON(w, r, http.StatusOK, view)
}
