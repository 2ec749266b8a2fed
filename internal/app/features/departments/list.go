package departments

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /api/departments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "departments.list")
	defer cancel()

	list, err := populate.Departments(ctx, h.DB, bson.M{}, nil)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}

// ServeView handles GET /api/departments/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Department")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "departments.view")
	defer cancel()

	v, err := populate.Department(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Department"))
		return
	}
	respond.OK(w, v)
}
