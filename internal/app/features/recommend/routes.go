// internal/app/features/recommend/routes.go
package recommend

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the recommendation feed under the caller's base path
// (typically "/api/events/recommended" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleFeed)
	return r
}
