package institutes

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /api/institutes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "institutes.list")
	defer cancel()

	list, err := populate.Institutes(ctx, h.DB, bson.M{})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}

// ServeView handles GET /api/institutes/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Institute")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "institutes.view")
	defer cancel()

	v, err := populate.Institute(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Institute"))
		return
	}
	respond.OK(w, v)
}

// ServeDepartments handles GET /api/institutes/{id}/departments, sorted by
// department name.
func (h *Handler) ServeDepartments(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Institute")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "institutes.departments")
	defer cancel()

	list, err := populate.Departments(ctx, h.DB, bson.M{"instituteId": id}, populate.ByName("name_ci"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}
