// Package recommend serves the recommendation feed by proxying the
// external scorer and shaping its output for clients.
package recommend

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"

	profilestore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/profiles"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/apiauth"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/httpjson"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/metrics"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
	"github.com/manojdintakurti/hokie-event-sphere/internal/platform/recommender"
)

// Recommender fetches scored events from the external service.
type Recommender interface {
	Recommendations(ctx context.Context, userID string, q recommender.Query) ([]recommender.Recommendation, error)
}

// ProfileReader looks up saved profiles for the coordinate fallback.
type ProfileReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
}

type Handler struct {
	Scorer   Recommender
	Profiles ProfileReader
	Log      *zap.Logger
}

func NewHandler(scorer Recommender, profiles ProfileReader, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Scorer: scorer, Profiles: profiles, Log: log}
}

const defaultLimit = 10

// HandleFeed serves GET /api/events/recommended?email=&latitude=&longitude=&limit=.
//
// Coordinates from the query string win over the saved profile's; the
// profile is only consulted when the query carries none. The user id sent
// to the scorer is the authenticated subject when present, falling back to
// the email for unauthenticated development traffic.
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	email := query.Get(r, "email")
	if email == "" {
		if p, ok := apiauth.FromContext(r.Context()); ok {
			email = p.Email
		}
	}
	if email == "" {
		httpjson.ValidationError(w, "email is required")
		return
	}

	q := recommender.Query{Email: email, Limit: defaultLimit}
	if raw := query.Get(r, "limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpjson.ValidationError(w, "limit must be a positive integer")
			return
		}
		q.Limit = n
	}

	lat, lon, err := coordsFromQuery(r)
	if err != nil {
		httpjson.ValidationError(w, err.Error())
		return
	}
	q.Latitude, q.Longitude = lat, lon

	userID := email
	if p, ok := apiauth.FromContext(r.Context()); ok {
		userID = p.Subject
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Outbound())
	defer cancel()

	if q.Latitude == nil || q.Longitude == nil {
		h.fillCoordsFromProfile(ctx, email, &q)
	}

	recs, err := h.Scorer.Recommendations(ctx, userID, q)
	switch {
	case errors.Is(err, recommender.ErrUserUnknown):
		metrics.RecommendationRequests.WithLabelValues("not_found").Inc()
		httpjson.NotFound(w, "no recommendations for user")
		return
	case err != nil:
		metrics.RecommendationRequests.WithLabelValues("upstream_error").Inc()
		h.Log.Error("recommendation fetch failed",
			zap.String("email", email),
			zap.Error(err))
		httpjson.Internal(w, "failed to fetch recommendations")
		return
	}

	metrics.RecommendationRequests.WithLabelValues("ok").Inc()
	httpjson.Write(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (h *Handler) fillCoordsFromProfile(ctx context.Context, email string, q *recommender.Query) {
	p, err := h.Profiles.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, profilestore.ErrNotFound) {
			h.Log.Warn("profile lookup for coordinates failed",
				zap.String("email", email),
				zap.Error(err))
		}
		return
	}
	if c := p.Address.Coordinates; c != nil {
		q.Latitude, q.Longitude = &c.Latitude, &c.Longitude
	}
}

// coordsFromQuery parses the optional latitude/longitude pair; supplying
// only one of the two is an error.
func coordsFromQuery(r *http.Request) (*float64, *float64, error) {
	rawLat := query.Get(r, "latitude")
	rawLon := query.Get(r, "longitude")
	if rawLat == "" && rawLon == "" {
		return nil, nil, nil
	}
	if rawLat == "" || rawLon == "" {
		return nil, nil, errors.New("latitude and longitude must be supplied together")
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, nil, errors.New("latitude must be a number")
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, nil, errors.New("longitude must be a number")
	}
	return &lat, &lon, nil
}
