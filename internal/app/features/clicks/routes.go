// internal/app/features/clicks/routes.go
package clicks

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the click endpoints under the caller's base path
// (typically "/api/events/log-click" from bootstrap). Rate limiting is
// applied by bootstrap so the limit is shared with any future write
// endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLog)
	r.Get("/", h.HandleGet)
	return r
}
