package participants

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
)

// HandleDelete handles DELETE /api/participants/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Participant")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "participants.delete")
	defer cancel()

	_, rec, err := h.own.Participant(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Delete, Kind: accesspolicy.Participant, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	if _, err := h.store.Delete(ctx, id); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.Deleted(w, "Participant removed successfully")
}
