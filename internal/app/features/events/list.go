// internal/app/features/events/list.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	eventstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/events"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/httpjson"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// listResponse matches the pagination envelope the frontend consumes.
type listResponse struct {
	Events      []models.Event `json:"events"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalEvents int64          `json:"totalEvents"`
}

// HandleList serves GET /api/events with page, limit, and category filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", 10)
	category := query.Get(r, "category")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	result, err := h.Events.List(ctx, page, limit, category)
	if err != nil {
		h.Log.Error("event listing failed", zap.Error(err))
		httpjson.Internal(w, "failed to list events")
		return
	}

	httpjson.Write(w, http.StatusOK, listResponse{
		Events:      result.Events,
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		TotalEvents: result.Total,
	})
}

// HandleGetByID serves GET /api/events/getById/{id}.
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.ValidationError(w, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventstore.ErrNotFound) {
			httpjson.NotFound(w, "event not found")
			return
		}
		h.Log.Error("event lookup failed", zap.String("id", id.Hex()), zap.Error(err))
		httpjson.Internal(w, "failed to load event")
		return
	}
	httpjson.Write(w, http.StatusOK, ev)
}

func intQuery(r *http.Request, name string, def int) int {
	raw := query.Get(r, name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
