// internal/app/features/departments/routes.go
package departments

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the department API under /api/departments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.With(auth.RequireRole("admin", "institute_coordinator")).Post("/", h.HandleCreate)
		pr.With(auth.RequireRole("admin", "department_coordinator")).Patch("/{id}", h.HandleEdit)
		pr.With(auth.RequireRole("admin")).Delete("/{id}", h.HandleDelete)
	})

	return r
}
