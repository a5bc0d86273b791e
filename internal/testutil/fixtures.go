package testutil

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
)

// InsertEvent writes an event document directly into the events collection
// and returns it with its assigned ID.
func InsertEvent(t *testing.T, db *mongo.Database, ev models.Event) models.Event {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if ev.UpdatedAt.IsZero() {
		ev.UpdatedAt = ev.CreatedAt
	}
	if ev.RSVPs == nil {
		ev.RSVPs = []models.RSVP{}
	}
	if _, err := db.Collection("events").InsertOne(ctx, ev); err != nil {
		t.Fatalf("insert fixture event: %v", err)
	}
	return ev
}

// SampleEvent builds a plausible event for fixtures; callers override what
// they care about.
func SampleEvent(title string) models.Event {
	start := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	return models.Event{
		Title:          title,
		Venue:          "Squires Student Center",
		Description:    "An event for testing.",
		StartDate:      start,
		EndDate:        start,
		StartTime:      "18:00",
		EndTime:        "20:00",
		OrganizerEmail: "organizer@vt.edu",
		OrganizerID:    "user_org1",
		MainCategory:   "Tech",
		SubCategory:    "Hackathon",
		RSVPs:          []models.RSVP{},
	}
}

// InsertProfile writes a user profile document directly.
func InsertProfile(t *testing.T, db *mongo.Database, p models.UserProfile) models.UserProfile {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if _, err := db.Collection("userprofiles").InsertOne(ctx, p); err != nil {
		t.Fatalf("insert fixture profile: %v", err)
	}
	return p
}

// CountDocs counts documents in a collection matching everything.
func CountDocs(t *testing.T, db *mongo.Database, coll string) int64 {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	n, err := db.Collection(coll).CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count %s: %v", coll, err)
	}
	return n
}
