// internal/domain/models/userprofile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile is an attendee profile, keyed by normalized email
// (upsert semantics, see profilestore). BSON names are camelCase for the
// same reason as Event: the external scorer reads userprofiles directly.
type UserProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   Address            `bson:"address,omitempty" json:"address"`
	Interests []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	ImageURL  string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`

	// RSVPs mirrors Event.RSVPs as an eventually-consistent projection.
	// The event's embedded list is authoritative; this copy can lag or
	// diverge and is never reconciled back.
	RSVPs []ProfileRSVP `bson:"rsvps,omitempty" json:"rsvps,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Address is a free-text postal address with optional resolved coordinates.
type Address struct {
	Street      string       `bson:"street,omitempty" json:"street,omitempty"`
	City        string       `bson:"city,omitempty" json:"city,omitempty"`
	State       string       `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode  string       `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country     string       `bson:"country,omitempty" json:"country,omitempty"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// Coordinates is a WGS84 lat/lon pair.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// RSVP mirror statuses.
const (
	RSVPStatusPending   = "Pending"
	RSVPStatusConfirmed = "Confirmed"
	RSVPStatusCancelled = "Cancelled"
)

// ProfileRSVP is one mirrored attendance record on a profile.
// The scorer resolves the event by ID, so only the reference is stored.
type ProfileRSVP struct {
	EventID      primitive.ObjectID `bson:"event" json:"event"`
	Status       string             `bson:"status" json:"status"` // Pending | Confirmed | Cancelled
	RegisteredAt time.Time          `bson:"registeredAt" json:"registeredAt"`
}
