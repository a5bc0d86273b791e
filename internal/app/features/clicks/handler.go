// Package clicks serves the click-affinity endpoints that feed the
// recommendation scorer's click factor.
package clicks

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"

	clickstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/clicks"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/apiauth"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/httpjson"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/metrics"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// ClickStore is the slice of the click store this feature uses.
type ClickStore interface {
	LogClick(ctx context.Context, userID, category, subCategory string) error
	GetByUserID(ctx context.Context, userID string) (*models.ClickCount, error)
}

type Handler struct {
	Clicks ClickStore
	Log    *zap.Logger
}

func NewHandler(clicks ClickStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Clicks: clicks, Log: log}
}

type logClickRequest struct {
	UserID      string `json:"userId"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// HandleLog serves POST /api/events/log-click. The authenticated subject,
// when present, overrides the body's userId so one caller cannot inflate
// another user's affinity.
func (h *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	var req logClickRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.ValidationError(w, err.Error())
		return
	}
	if p, ok := apiauth.FromContext(r.Context()); ok {
		req.UserID = p.Subject
	}
	if req.UserID == "" || req.Category == "" || req.Subcategory == "" {
		httpjson.ValidationError(w, "userId, category, and subcategory are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Clicks.LogClick(ctx, req.UserID, req.Category, req.Subcategory); err != nil {
		h.Log.Error("click increment failed",
			zap.String("user_id", req.UserID),
			zap.String("category", req.Category),
			zap.Error(err))
		httpjson.Internal(w, "failed to log click")
		return
	}

	metrics.ClicksLogged.Inc()
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "Click logged successfully"})
}

// HandleGet serves GET /api/events/log-click?userId= with the user's full
// aggregate document.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := query.Get(r, "userId")
	if userID == "" {
		if p, ok := apiauth.FromContext(r.Context()); ok {
			userID = p.Subject
		}
	}
	if userID == "" {
		httpjson.ValidationError(w, "userId is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cc, err := h.Clicks.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, clickstore.ErrNotFound) {
			httpjson.NotFound(w, "no click history for user")
			return
		}
		h.Log.Error("click lookup failed", zap.String("user_id", userID), zap.Error(err))
		httpjson.Internal(w, "failed to load click history")
		return
	}
	httpjson.Write(w, http.StatusOK, cc)
}
