package groups

import (
	"context"
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeList handles GET /api/groups?event=. Students get the groups they
// registered; coordinators get the groups the policy lets them read.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if ev := strings.TrimSpace(r.URL.Query().Get("event")); ev != "" {
		id, err := ownership.ParseID(ev, "Event")
		if err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
		filter["eventId"] = id
	}

	caller := authz.Caller(r)
	if caller.Role == accesspolicy.RoleStudent {
		uid, _ := primitive.ObjectIDFromHex(caller.ID)
		filter["createdBy"] = uid
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.list")
	defer cancel()

	all, err := h.store.Find(ctx, filter)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if caller.Role == accesspolicy.RoleAdmin {
		respond.List(w, all, len(all))
		return
	}

	visible, err := h.readable(ctx, caller, all)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, visible, len(visible))
}

// readable keeps the groups the caller may read. Event chains are loaded
// once per event.
func (h *Handler) readable(ctx context.Context, caller accesspolicy.Caller, groups []models.Group) ([]models.Group, error) {
	chains := map[primitive.ObjectID]*accesspolicy.Record{}
	out := []models.Group{}
	for _, g := range groups {
		ev, seen := chains[g.EventID]
		if !seen {
			_, rec, err := h.own.Event(ctx, g.EventID)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			chains[g.EventID] = rec
			ev = rec
		}
		req := accesspolicy.Request{
			Caller: caller,
			Action: accesspolicy.Read,
			Kind:   accesspolicy.Group,
			Target: ownership.GroupRecord(g, ev),
		}
		if accesspolicy.Allowed(req) {
			out = append(out, g)
		}
	}
	return out, nil
}
