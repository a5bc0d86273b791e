// Package profile serves the user profile endpoints. Profiles are keyed by
// email and feed the recommendation scorer's interest and RSVP factors.
package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	profilestore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/profiles"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/httpjson"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// ProfileStore is the slice of the profile store this feature uses.
type ProfileStore interface {
	Upsert(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
}

// Geocoder resolves addresses to coordinates.
type Geocoder interface {
	Forward(ctx context.Context, address string) (*models.Coordinates, error)
}

type Handler struct {
	Profiles ProfileStore
	Geocode  Geocoder
	Log      *zap.Logger

	validate *validator.Validate
}

func NewHandler(profiles ProfileStore, geocode Geocoder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Profiles: profiles,
		Geocode:  geocode,
		Log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type saveRequest struct {
	FullName  string         `json:"fullName" validate:"required,max=200"`
	Email     string         `json:"email" validate:"required,email"`
	Phone     string         `json:"phone" validate:"omitempty,max=40"`
	Address   models.Address `json:"address"`
	Interests []string       `json:"interests" validate:"omitempty,dive,max=100"`
	ImageURL  string         `json:"imageUrl" validate:"omitempty,url"`
}

// HandleSave serves POST /api/events/profile/save. Saving the same email
// again updates the profile in place. When an address is supplied without
// coordinates, it is forward-geocoded; explicitly supplied coordinates are
// kept as-is. Geocoding failures never fail the save.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.ValidationError(w, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpjson.ValidationError(w, "fullName and a valid email are required")
		return
	}

	if req.Address.Coordinates == nil {
		if line := addressLine(req.Address); line != "" {
			geoCtx, cancel := context.WithTimeout(r.Context(), timeouts.Outbound())
			coords, err := h.Geocode.Forward(geoCtx, line)
			cancel()
			if err != nil {
				h.Log.Warn("profile address geocoding failed",
					zap.String("email", req.Email),
					zap.Error(err))
			} else {
				req.Address.Coordinates = coords
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := h.Profiles.Upsert(ctx, models.UserProfile{
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Interests: req.Interests,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		h.Log.Error("profile save failed", zap.String("email", req.Email), zap.Error(err))
		httpjson.Internal(w, "failed to save profile")
		return
	}
	httpjson.Write(w, http.StatusOK, saved)
}

// HandleGet serves GET /api/events/profile?email=.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	email := query.Get(r, "email")
	if email == "" {
		httpjson.ValidationError(w, "email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			httpjson.NotFound(w, "profile not found")
			return
		}
		h.Log.Error("profile lookup failed", zap.String("email", email), zap.Error(err))
		httpjson.Internal(w, "failed to load profile")
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// addressLine flattens the address fields into one geocodable string.
func addressLine(a models.Address) string {
	parts := make([]string, 0, 5)
	for _, s := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
