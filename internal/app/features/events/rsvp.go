// internal/app/features/events/rsvp.go
package events

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	eventstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/events"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/httpjson"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/mailer"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/metrics"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

type rsvpRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=40"`
}

type rsvpResponse struct {
	RSVP    models.RSVP `json:"rsvp"`
	Message string      `json:"message"`
}

// HandleRSVP serves POST /api/events/{id}/rsvp.
//
// Registration is two-phase: the conditional append to the event document
// is the primary step and decides the HTTP status; the profile mirror and
// the confirmation email are secondary and only shade the response message
// when they fail. A registration is never rolled back because mail or the
// mirror misbehaved.
func (h *Handler) HandleRSVP(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.ValidationError(w, "invalid event id")
		return
	}

	var req rsvpRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.ValidationError(w, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpjson.ValidationError(w, "name and a valid email are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rsvp, err := h.Events.AppendRSVP(ctx, id, models.RSVP{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	switch {
	case errors.Is(err, eventstore.ErrNotFound):
		metrics.RSVPsRegistered.WithLabelValues("error").Inc()
		httpjson.NotFound(w, "event not found")
		return
	case errors.Is(err, eventstore.ErrDuplicateRSVP):
		metrics.RSVPsRegistered.WithLabelValues("duplicate").Inc()
		httpjson.Conflict(w, "You have already RSVP'd to this event")
		return
	case err != nil:
		metrics.RSVPsRegistered.WithLabelValues("error").Inc()
		h.Log.Error("RSVP append failed", zap.String("event_id", id.Hex()), zap.Error(err))
		httpjson.Internal(w, "failed to register RSVP")
		return
	}

	outcome := "ok"
	message := "RSVP confirmed"

	if err := h.Profiles.MirrorRSVP(ctx, rsvp.Email, id, rsvp.CreatedAt); err != nil {
		outcome = "mirror_failed"
		h.Log.Warn("RSVP profile mirror failed",
			zap.String("event_id", id.Hex()),
			zap.String("email", rsvp.Email),
			zap.Error(err))
	}

	if err := h.sendConfirmation(ctx, id, rsvp); err != nil {
		outcome = "email_failed"
		message = "RSVP confirmed, but the confirmation email could not be sent"
		h.Log.Warn("RSVP confirmation email failed",
			zap.String("event_id", id.Hex()),
			zap.String("email", rsvp.Email),
			zap.Error(err))
	}

	metrics.RSVPsRegistered.WithLabelValues(outcome).Inc()
	httpjson.Write(w, http.StatusCreated, rsvpResponse{RSVP: rsvp, Message: message})
}

func (h *Handler) sendConfirmation(ctx context.Context, id primitive.ObjectID, rsvp models.RSVP) error {
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	email := mailer.BuildRSVPConfirmation(h.SiteName, h.FrontendURL, ev, rsvp)

	sendCtx, cancel := context.WithTimeout(ctx, timeouts.Outbound())
	defer cancel()
	return h.Mail.Send(sendCtx, email)
}
