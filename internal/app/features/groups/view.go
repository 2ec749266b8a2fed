package groups

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
)

// ServeView handles GET /api/groups/{id} and includes the participants.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Group")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "groups.view")
	defer cancel()

	g, rec, err := h.own.Group(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Read, Kind: accesspolicy.Group, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	members, err := h.participants.ListByGroup(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, groupDetail{Group: g, Participants: members})
}
