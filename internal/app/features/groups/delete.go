package groups

import (
	"context"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /api/groups/{id}. Groups are never blocked;
// their participants and any winner placing are removed with them.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Group")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.delete")
	defer cancel()

	_, rec, err := h.own.Group(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Delete, Kind: accesspolicy.Group, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var removed int64
	if _, err := h.Guard.Delete(ctx, accesspolicy.Group, id, func(ctx context.Context) (int64, error) {
		n, err := h.participants.DeleteByGroup(ctx, id)
		if err != nil {
			return 0, err
		}
		removed = n
		if _, err := h.winners.DeleteByGroup(ctx, id); err != nil {
			return 0, err
		}
		return h.store.Delete(ctx, id)
	}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("group deleted", zap.String("group_id", id.Hex()), zap.Int64("participants_removed", removed))
	respond.Deleted(w, "Group deleted successfully")
}
