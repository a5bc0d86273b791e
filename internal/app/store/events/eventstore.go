// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/normalize"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

var (
	// ErrNotFound is returned when no event exists with the given ID.
	ErrNotFound = errors.New("event not found")
	// ErrDuplicateRSVP is returned when the email already has an RSVP on
	// the event.
	ErrDuplicateRSVP = errors.New("an RSVP with this email already exists for this event")
)

type Store struct {
	c        *mongo.Collection
	sanitize *bluemonday.Policy
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("events"),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// Create inserts a new event after normalizing and sanitizing fields.
// The description is sanitized here so every downstream consumer, the
// confirmation email included, can embed it as HTML.
func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	now := time.Now().UTC()

	ev.ID = primitive.NewObjectID()
	ev.Title = strings.TrimSpace(ev.Title)
	ev.Venue = strings.TrimSpace(ev.Venue)
	ev.Description = s.sanitize.Sanitize(ev.Description)
	ev.OrganizerEmail = normalize.Email(ev.OrganizerEmail)
	ev.MainCategory = normalize.Category(ev.MainCategory)
	ev.SubCategory = normalize.Category(ev.SubCategory)
	if ev.RSVPs == nil {
		ev.RSVPs = []models.RSVP{}
	}
	ev.CreatedAt = now
	ev.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// GetByID loads one event. Returns ErrNotFound when it does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// Page is one page of the event listing plus pagination totals.
type Page struct {
	Events      []models.Event
	Total       int64
	CurrentPage int
	TotalPages  int
}

// List returns one page of events sorted by start date ascending,
// optionally filtered to one main category. Page numbers are 1-based.
func (s *Store) List(ctx context.Context, page, limit int, category string) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if category != "" {
		filter["main_category"] = normalize.Category(category)
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startDate", Value: 1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return Page{}, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return Page{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Page{
		Events:      events,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

// AppendRSVP pushes an RSVP onto the event in a single conditional update,
// so two concurrent registrations for the same email cannot both land.
// The filter only matches when no embedded RSVP already carries the email;
// a non-match is then disambiguated with a lookup.
func (s *Store) AppendRSVP(ctx context.Context, id primitive.ObjectID, r models.RSVP) (models.RSVP, error) {
	r.ID = uuid.NewString()
	r.Name = normalize.Name(r.Name)
	r.Email = normalize.Email(r.Email)
	r.Phone = normalize.Phone(r.Phone)
	r.CreatedAt = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "rsvps.email": bson.M{"$ne": r.Email}},
		bson.M{
			"$push": bson.M{"rsvps": r},
			"$set":  bson.M{"updatedAt": r.CreatedAt},
		})
	if err != nil {
		return models.RSVP{}, err
	}
	if res.MatchedCount == 0 {
		// Either the event is missing or the email already RSVPed.
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.RSVP{}, ErrNotFound
			}
			return models.RSVP{}, err
		}
		return models.RSVP{}, ErrDuplicateRSVP
	}
	return r, nil
}

// UpdateCategorization sets the categories assigned by the categorizer
// service. A missing event is not an error; the event may have been
// deleted while categorization ran.
func (s *Store) UpdateCategorization(ctx context.Context, id primitive.ObjectID, mainCategory, subCategory string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"main_category": normalize.Category(mainCategory),
			"sub_category":  normalize.Category(subCategory),
			"updatedAt":     time.Now().UTC(),
		}})
	return err
}
