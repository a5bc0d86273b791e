// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
)

// Register attaches the event endpoints to the caller's router (typically
// the "/api/events" subtree from bootstrap). The log-click, profile, and
// recommended subtrees are mounted by bootstrap on the same router; chi
// prefers their static segments over the {id} parameter here.
func Register(r chi.Router, h *Handler) {
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/getById/{id}", h.HandleGetByID)
	r.Post("/{id}/rsvp", h.HandleRSVP)
}
