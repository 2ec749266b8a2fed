package events

import (
	"errors"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	winnerstore "github.com/YatharthSanghavi/wt-project/internal/app/store/winners"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeWinners handles GET /api/events/{id}/winners, ordered by position.
func (h *Handler) ServeWinners(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "events.winners")
	defer cancel()

	if _, err := h.store.GetByID(ctx, id); err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}
	list, err := h.winners.ListByEvent(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}

// HandleAddWinner handles POST /api/events/{id}/winners. The group must be
// registered for the event and each position can be held once.
func (h *Handler) HandleAddWinner(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.add_winner")
	defer cancel()

	_, evRec, err := h.own.Event(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Create, Kind: accesspolicy.Winner, Parent: evRec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var in winnerInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	groupID, _ := primitive.ObjectIDFromHex(in.GroupID)
	g, err := h.groups.GetByID(ctx, groupID)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Group"))
		return
	}
	if g.EventID != id {
		respond.Error(w, r, h.Log, apierr.Validation("Group is not registered for this event"))
		return
	}

	_, _, by, _ := authz.UserCtx(r)
	created, err := h.winners.Create(ctx, models.EventWinner{
		EventID:    id,
		GroupID:    groupID,
		Sequence:   in.Sequence,
		ModifiedBy: &by,
	})
	if err != nil {
		if errors.Is(err, winnerstore.ErrPositionTaken) {
			err = apierr.Wrap(apierr.KindConflict, err.Error(), err)
		}
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("winner recorded",
		zap.String("event_id", id.Hex()),
		zap.String("group_id", groupID.Hex()),
		zap.Int("sequence", in.Sequence))
	respond.Created(w, "Winner added successfully", created)
}

// HandleRemoveWinner handles DELETE /api/events/{id}/winners/{winnerId}.
func (h *Handler) HandleRemoveWinner(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	winnerID, err := ownership.ParamID(r, "winnerId", "Winner")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.remove_winner")
	defer cancel()

	_, evRec, err := h.own.Event(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	win, err := h.winners.GetByID(ctx, winnerID)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Winner"))
		return
	}
	if win.EventID != id {
		respond.Error(w, r, h.Log, apierr.NotFound("Winner"))
		return
	}
	target := &accesspolicy.Record{Kind: accesspolicy.Winner, ID: winnerID.Hex(), Parent: evRec}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Delete, Kind: accesspolicy.Winner, Target: target}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	if _, err := h.winners.Delete(ctx, winnerID); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.Deleted(w, "Winner removed successfully")
}
