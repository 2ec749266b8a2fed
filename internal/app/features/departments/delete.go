package departments

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

// HandleDelete handles DELETE /api/departments/{id}; blocked while events exist.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Department")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "departments.delete")
	defer cancel()

	_, rec, err := h.own.Department(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Delete, Kind: accesspolicy.Department, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	if _, err := h.Guard.Delete(ctx, accesspolicy.Department, id, func(ctx context.Context) (int64, error) {
		return h.store.Delete(ctx, id)
	}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("department deleted", zap.String("department_id", id.Hex()))
	respond.Deleted(w, "Department deleted successfully")
}
