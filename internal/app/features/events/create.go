// internal/app/features/events/create.go
package events

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/httpjson"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/metrics"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/timeouts"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
	"go.uber.org/zap"
)

// maxCreateForm caps the in-memory portion of the multipart form; larger
// file parts spill to disk.
const maxCreateForm = 10 << 20

// createRequest is the validated shape of the multipart form fields.
type createRequest struct {
	Title           string `validate:"required,max=200"`
	Venue           string `validate:"required,max=300"`
	Description     string `validate:"required"`
	StartDate       string `validate:"required"`
	EndDate         string `validate:"required"`
	StartTime       string `validate:"required"`
	EndTime         string `validate:"required"`
	OrganizerEmail  string `validate:"required,email"`
	OrganizerID     string
	MainCategory    string
	SubCategory     string
	RegistrationFee *float64 `validate:"omitempty,gte=0"`
}

// HandleCreate serves POST /api/events. The form carries the event fields
// plus an optional "image" file part, which is uploaded to the image host
// before the insert. Categorization runs after the response.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCreateForm); err != nil {
		httpjson.ValidationError(w, "request must be multipart form data")
		return
	}

	req := createRequest{
		Title:          r.FormValue("title"),
		Venue:          r.FormValue("venue"),
		Description:    r.FormValue("description"),
		StartDate:      r.FormValue("startDate"),
		EndDate:        r.FormValue("endDate"),
		StartTime:      r.FormValue("startTime"),
		EndTime:        r.FormValue("endTime"),
		OrganizerEmail: r.FormValue("organizerEmail"),
		OrganizerID:    r.FormValue("organizerId"),
		MainCategory:   r.FormValue("main_category"),
		SubCategory:    r.FormValue("sub_category"),
	}
	if raw := r.FormValue("registrationFee"); raw != "" {
		fee, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpjson.ValidationError(w, "registrationFee must be a number")
			return
		}
		req.RegistrationFee = &fee
	}
	if err := h.validate.Struct(req); err != nil {
		httpjson.ValidationError(w, "missing or invalid event fields: "+err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		httpjson.ValidationError(w, "startDate must be an RFC3339 timestamp or YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		httpjson.ValidationError(w, "endDate must be an RFC3339 timestamp or YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		httpjson.ValidationError(w, "endDate must not be before startDate")
		return
	}

	ev := models.Event{
		Title:           req.Title,
		Venue:           req.Venue,
		Description:     req.Description,
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		RegistrationFee: req.RegistrationFee,
		OrganizerEmail:  req.OrganizerEmail,
		OrganizerID:     req.OrganizerID,
		MainCategory:    req.MainCategory,
		SubCategory:     req.SubCategory,
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		uploadCtx, cancel := context.WithTimeout(r.Context(), timeouts.Outbound())
		url, upErr := h.Images.Upload(uploadCtx, header.Filename, file)
		cancel()
		if upErr != nil {
			h.Log.Error("event image upload failed", zap.Error(upErr))
			httpjson.Internal(w, "failed to upload event image")
			return
		}
		ev.ImageURL = url
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	created, err := h.Events.Create(ctx, ev)
	if err != nil {
		h.Log.Error("event insert failed", zap.Error(err))
		httpjson.Internal(w, "failed to create event")
		return
	}

	metrics.EventsCreated.Inc()
	h.Categorize.CategorizeAsync(created.ID.Hex())

	httpjson.Write(w, http.StatusCreated, created)
}

// parseDate accepts both full timestamps and bare calendar days.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	return t.UTC(), err
}
