// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/normalize"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// ErrNotFound is returned when no profile exists for the given email.
var ErrNotFound = errors.New("profile not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("userprofiles")}
}

// Upsert saves a profile keyed by normalized email. Saving the same email
// again replaces the editable fields and leaves the mirrored RSVP list and
// creation time alone. Returns the stored document.
func (s *Store) Upsert(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	email := normalize.Email(p.Email)
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"fullName":  normalize.Name(p.FullName),
			"phone":     normalize.Phone(p.Phone),
			"address":   p.Address,
			"interests": p.Interests,
			"imageUrl":  p.ImageURL,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"email":     email,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.UserProfile
	err := s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&stored)
	if wafflemongo.IsDup(err) {
		// Lost an upsert race to the same email; the document exists now.
		err = s.c.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&stored)
	}
	if err != nil {
		return models.UserProfile{}, err
	}
	return stored, nil
}

// GetByEmail loads a profile by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// MirrorRSVP records an event registration on the attendee's profile.
// The push is conditional on the event not already being mirrored, so a
// replayed registration stays idempotent here. A missing profile is not an
// error; attendees without a saved profile simply have no mirror.
func (s *Store) MirrorRSVP(ctx context.Context, email string, eventID primitive.ObjectID, registeredAt time.Time) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{
			"email":       normalize.Email(email),
			"rsvps.event": bson.M{"$ne": eventID},
		},
		bson.M{
			"$push": bson.M{"rsvps": models.ProfileRSVP{
				EventID:      eventID,
				Status:       models.RSVPStatusConfirmed,
				RegisteredAt: registeredAt,
			}},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		})
	return err
}
