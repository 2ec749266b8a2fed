package participants

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
)

// ServeList handles GET /api/groups/{id}/participants.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	groupID, err := ownership.ParamID(r, "id", "Group")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "participants.list")
	defer cancel()

	_, grp, err := h.own.Group(ctx, groupID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Read, Kind: accesspolicy.Participant, Parent: grp}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	list, err := h.store.ListByGroup(ctx, groupID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}
