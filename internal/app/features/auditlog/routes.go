package auditlog

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts /api/audit for admins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole("admin"))

	r.Get("/", h.ServeList)

	return r
}
