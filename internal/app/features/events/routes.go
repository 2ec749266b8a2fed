// internal/app/features/events/routes.go
package events

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the event API under /api/events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/department/{departmentId}", h.ServeByDepartment)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/summary", h.ServeSummary)
	r.Get("/{id}/winners", h.ServeWinners)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.With(auth.RequireRole("admin", "department_coordinator")).Post("/", h.HandleCreate)
		pr.With(auth.RequireRole("admin", "event_coordinator", "department_coordinator")).Patch("/{id}", h.HandleEdit)
		pr.With(auth.RequireRole("admin")).Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/winners", h.HandleAddWinner)
		pr.Delete("/{id}/winners/{winnerId}", h.HandleRemoveWinner)
	})

	return r
}
