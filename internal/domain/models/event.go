// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is one discoverable event with its embedded RSVP list.
//
// BSON field names are camelCase (not this codebase's usual snake_case)
// because the external recommendation scorer reads the events collection
// directly and expects these exact names (title, startDate, main_category,
// sub_category, imageUrl, ...). Do not rename fields without coordinating
// with that service.
type Event struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Venue           string             `bson:"venue" json:"venue"`
	Description     string             `bson:"description" json:"description"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
	StartTime       string             `bson:"startTime" json:"startTime"` // "15:04"
	EndTime         string             `bson:"endTime" json:"endTime"`
	RegistrationFee *float64           `bson:"registrationFee,omitempty" json:"registrationFee,omitempty"`
	OrganizerEmail  string             `bson:"organizerEmail" json:"organizerEmail"`
	OrganizerID     string             `bson:"organizerId" json:"organizerId"`
	ImageURL        string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	MainCategory    string             `bson:"main_category" json:"mainCategory"`
	SubCategory     string             `bson:"sub_category" json:"subCategory"`
	RSVPs           []RSVP             `bson:"rsvps" json:"rsvps"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RSVP is one attendance record embedded in an event.
// Email is stored trimmed and lowercased; it is unique within one event.
type RSVP struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
