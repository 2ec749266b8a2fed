package groups

import (
	"context"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/txn"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/groups. The caller becomes the group's
// creator; registration closes once the event has maxGroupsAllowed groups.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.GroupName = htmlsanitize.PlainText(in.GroupName)
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.create")
	defer cancel()

	eventID, _ := primitive.ObjectIDFromHex(in.EventID)
	ev, evRec, err := h.own.Event(ctx, eventID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Create, Kind: accesspolicy.Group, Parent: evRec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	_, _, by, _ := authz.UserCtx(r)
	var created models.Group
	err = txn.Run(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		n, err := h.store.CountByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if err := inputval.CheckGroupCapacity(n, ev.MaxGroupsAllowed); err != nil {
			return err
		}
		created, err = h.store.Create(ctx, models.Group{
			Name:       in.GroupName,
			EventID:    eventID,
			CreatedBy:  &by,
			ModifiedBy: &by,
		})
		return err
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("group registered",
		zap.String("group_id", created.ID.Hex()),
		zap.String("event_id", eventID.Hex()),
		zap.String("by", by.Hex()))
	respond.Created(w, "Group created successfully", created)
}
