// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the profile endpoints under the caller's base path
// (typically "/api/events/profile" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/save", h.HandleSave)
	r.Get("/", h.HandleGet)
	return r
}
