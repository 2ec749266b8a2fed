package institutes

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

// HandleDelete handles DELETE /api/institutes/{id}. It is refused while any
// department still belongs to the institute.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Institute")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "institutes.delete")
	defer cancel()

	_, rec, err := h.own.Institute(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Delete, Kind: accesspolicy.Institute, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	if _, err := h.Guard.Delete(ctx, accesspolicy.Institute, id, func(ctx context.Context) (int64, error) {
		return h.store.Delete(ctx, id)
	}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("institute deleted", zap.String("institute_id", id.Hex()))
	respond.Deleted(w, "Institute deleted successfully")
}
