// internal/app/features/participants/routes.go
package participants

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts /api/participants/{id}. Listing and adding participants
// live under the group: see MountOnGroup.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Patch("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)
	return r
}

// MountOnGroup adds the group-scoped participant routes to a router whose
// pattern already binds {id} to the group.
func MountOnGroup(r chi.Router, h *Handler) {
	r.Get("/{id}/participants", h.ServeList)
	r.Post("/{id}/participants", h.HandleCreate)
}
