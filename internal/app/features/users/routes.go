package users

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts /api/users. Every route needs a signed-in caller; listing
// and deleting are for admins only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.With(auth.RequireRole("admin")).Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Patch("/{id}", h.HandleEdit)
	r.With(auth.RequireRole("admin")).Delete("/{id}", h.HandleDelete)

	return r
}
