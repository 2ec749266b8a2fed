package events

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

// HandleDelete handles DELETE /api/events/{id}; blocked while groups are
// registered. The event's winner entries go with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.delete")
	defer cancel()

	_, rec, err := h.own.Event(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Delete, Kind: accesspolicy.Event, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	if _, err := h.Guard.Delete(ctx, accesspolicy.Event, id, func(ctx context.Context) (int64, error) {
		if _, err := h.winners.DeleteByEvent(ctx, id); err != nil {
			return 0, err
		}
		return h.store.Delete(ctx, id)
	}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("event deleted", zap.String("event_id", id.Hex()))
	respond.Deleted(w, "Event deleted successfully")
}
