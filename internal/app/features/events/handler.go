// Package events serves the event CRUD and RSVP endpoints.
package events

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	eventstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/events"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/mailer"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// EventStore is the slice of the event store this feature uses.
type EventStore interface {
	Create(ctx context.Context, ev models.Event) (models.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	List(ctx context.Context, page, limit int, category string) (eventstore.Page, error)
	AppendRSVP(ctx context.Context, id primitive.ObjectID, r models.RSVP) (models.RSVP, error)
}

// ProfileMirror records registrations on attendee profiles.
type ProfileMirror interface {
	MirrorRSVP(ctx context.Context, email string, eventID primitive.ObjectID, registeredAt time.Time) error
}

// ImageUploader pushes event images to the external host.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Categorizer kicks off asynchronous event categorization.
type Categorizer interface {
	CategorizeAsync(eventID string)
}

// MailSender delivers confirmation email.
type MailSender interface {
	Send(ctx context.Context, e mailer.Email) error
}

// Handler holds the event feature's dependencies.
type Handler struct {
	Events      EventStore
	Profiles    ProfileMirror
	Images      ImageUploader
	Categorize  Categorizer
	Mail        MailSender
	SiteName    string
	FrontendURL string
	Log         *zap.Logger

	validate *validator.Validate
}

func NewHandler(events EventStore, profiles ProfileMirror, images ImageUploader, categorize Categorizer, mail MailSender, siteName, frontendURL string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Events:      events,
		Profiles:    profiles,
		Images:      images,
		Categorize:  categorize,
		Mail:        mail,
		SiteName:    siteName,
		FrontendURL: frontendURL,
		Log:         log,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}
