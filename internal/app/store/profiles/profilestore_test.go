package profilestore_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	profilestore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/profiles"
	"github.com/manojdintakurti/hokie-event-sphere/internal/domain/models"
	"github.com/manojdintakurti/hokie-event-sphere/internal/testutil"
)

func TestStore_Upsert_CreatesAndUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Upsert(ctx, models.UserProfile{
		FullName:  "  Ann Example ",
		Email:     "Ann@VT.edu",
		Interests: []string{"Tech", "Music"},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "ann@vt.edu" {
		t.Errorf("Email: got %q, want normalized", created.Email)
	}
	if created.FullName != "Ann Example" {
		t.Errorf("FullName: got %q, want trimmed", created.FullName)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	// Saving again with the same email updates in place.
	updated, err := store.Upsert(ctx, models.UserProfile{
		FullName:  "Ann B. Example",
		Email:     "ann@vt.edu",
		Interests: []string{"Tech"},
	})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("expected same document, got new ID %s", updated.ID.Hex())
	}
	if updated.FullName != "Ann B. Example" {
		t.Errorf("FullName: got %q, want updated", updated.FullName)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("expected CreatedAt to be preserved on update")
	}
	if n := testutil.CountDocs(t, db, "userprofiles"); n != 1 {
		t.Errorf("profile count: got %d, want 1", n)
	}
}

func TestStore_Upsert_PreservesMirroredRSVPs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Upsert(ctx, models.UserProfile{FullName: "Ann", Email: "ann@vt.edu"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	eventID := primitive.NewObjectID()
	if err := store.MirrorRSVP(ctx, "ann@vt.edu", eventID, time.Now().UTC()); err != nil {
		t.Fatalf("MirrorRSVP failed: %v", err)
	}

	updated, err := store.Upsert(ctx, models.UserProfile{FullName: "Ann Example", Email: "ann@vt.edu"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if len(updated.RSVPs) != 1 || updated.RSVPs[0].EventID != eventID {
		t.Errorf("expected mirrored RSVP to survive profile save, got %+v", updated.RSVPs)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Upsert(ctx, models.UserProfile{FullName: "Ann", Email: "ann@vt.edu"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "  ANN@vt.edu ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.FullName != "Ann" {
		t.Errorf("FullName: got %q, want %q", got.FullName, "Ann")
	}

	_, err = store.GetByEmail(ctx, "nobody@vt.edu")
	if !errors.Is(err, profilestore.ErrNotFound) {
		t.Errorf("missing profile: got %v, want ErrNotFound", err)
	}
}

func TestStore_MirrorRSVP_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Upsert(ctx, models.UserProfile{FullName: "Ann", Email: "ann@vt.edu"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	eventID := primitive.NewObjectID()
	at := time.Now().UTC()
	if err := store.MirrorRSVP(ctx, "ann@vt.edu", eventID, at); err != nil {
		t.Fatalf("MirrorRSVP failed: %v", err)
	}
	if err := store.MirrorRSVP(ctx, "ann@vt.edu", eventID, at); err != nil {
		t.Fatalf("repeated MirrorRSVP failed: %v", err)
	}

	p, err := store.GetByEmail(ctx, "ann@vt.edu")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if len(p.RSVPs) != 1 {
		t.Fatalf("mirrored RSVPs: got %d, want 1", len(p.RSVPs))
	}
	if p.RSVPs[0].Status != models.RSVPStatusConfirmed {
		t.Errorf("Status: got %q, want %q", p.RSVPs[0].Status, models.RSVPStatusConfirmed)
	}
}

func TestStore_MirrorRSVP_NoProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Attendees without a saved profile are simply not mirrored.
	if err := store.MirrorRSVP(ctx, "stranger@vt.edu", primitive.NewObjectID(), time.Now()); err != nil {
		t.Errorf("MirrorRSVP without profile: got %v, want nil", err)
	}
}
