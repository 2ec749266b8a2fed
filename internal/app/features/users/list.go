package users

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
)

// ServeList handles GET /api/users?role=&search=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Read, Kind: accesspolicy.User}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "users.list")
	defer cancel()

	q := r.URL.Query()
	f := populate.UserFilter{Role: q.Get("role"), Search: q.Get("search")}
	list, err := populate.Users(ctx, h.DB, f.Match())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}

// ServeView handles GET /api/users/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "User")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Read, Kind: accesspolicy.User, Target: ownership.UserRecord(id)}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.view")
	defer cancel()

	v, err := populate.User(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "User"))
		return
	}
	respond.OK(w, v)
}
