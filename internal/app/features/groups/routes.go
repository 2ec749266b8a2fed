// internal/app/features/groups/routes.go
package groups

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/features/participants"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts /api/groups. Every route needs a signed-in caller.
func Routes(h *Handler, ph *participants.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)

	participants.MountOnGroup(r, ph)
	return r
}
