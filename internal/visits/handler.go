package visits

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/chatbox-platform/chatbox/internal/api"
	"github.com/chatbox-platform/chatbox/internal/metrics"
)

// Handler handles the visit-tracking HTTP endpoint.
type Handler struct {
	tracker  *Tracker
	validate *validator.Validate
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{
		tracker:  tracker,
		validate: validator.New(),
	}
}

// TrackVisitRequest is the /api/track_visit request body. Page content is
// not validated beyond presence of the field.
type TrackVisitRequest struct {
	VisitorID string `json:"visitor_id" validate:"required"`
	Page      string `json:"page"`
}

type trackVisitResponse struct {
	Status    string   `json:"status"`
	VisitorID string   `json:"visitor_id"`
	Pages     []string `json:"pages"`
}

// TrackVisit records which page a visitor has seen and returns the
// visitor's full page list.
func (h *Handler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req TrackVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	pages := h.tracker.RecordVisit(req.VisitorID, req.Page)
	metrics.VisitsRecordedTotal.Inc()

	api.JSON(w, http.StatusOK, trackVisitResponse{
		Status:    "ok",
		VisitorID: req.VisitorID,
		Pages:     pages,
	})
}
