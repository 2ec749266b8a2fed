package events

import (
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/patch"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// HandleEdit handles PATCH /api/events/{id}. A rejected patch leaves the
// stored event unchanged.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.edit")
	defer cancel()

	stored, rec, err := h.own.Event(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Update, Kind: accesspolicy.Event, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var in editInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	current := inputval.EventBounds{
		GroupMin:  stored.GroupMinParticipants,
		GroupMax:  stored.GroupMaxParticipants,
		MaxGroups: stored.MaxGroupsAllowed,
		Fees:      stored.Fees,
	}
	if err := inputval.CheckEventPatch(current, in.patch()); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	set := bson.M{}
	str := func(key string, v *string, clean func(string) string) {
		if v != nil {
			set[key] = clean(*v)
		}
	}
	str("eventName", in.EventName, htmlsanitize.PlainText)
	str("tagline", in.Tagline, htmlsanitize.PlainText)
	str("description", in.Description, htmlsanitize.Sanitize)
	str("eventImage", in.EventImage, strings.TrimSpace)
	str("prizes", in.Prizes, htmlsanitize.Sanitize)
	str("eventLocation", in.EventLocation, htmlsanitize.PlainText)
	str("studentCoordinatorName", in.StudentCoordinatorName, htmlsanitize.PlainText)
	str("studentCoordinatorPhone", in.StudentCoordinatorPhone, strings.TrimSpace)
	str("studentCoordinatorEmail", in.StudentCoordinatorEmail, inputval.NormalizeEmail)

	next := in.patch().Apply(current)
	if in.GroupMinParticipants != nil {
		set["groupMinParticipants"] = next.GroupMin
	}
	if in.GroupMaxParticipants != nil {
		set["groupMaxParticipants"] = next.GroupMax
	}
	if in.MaxGroupsAllowed != nil {
		set["maxGroupsAllowed"] = next.MaxGroups
	}
	if in.Fees != nil {
		set["fees"] = next.Fees
	}
	if in.CoordinatorID != nil {
		set["coordinatorId"] = patch.OptionalID(*in.CoordinatorID)
	}

	_, _, by, _ := authz.UserCtx(r)
	if err := h.store.Update(ctx, id, set, by); err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}

	v, err := populate.Event(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}
	respond.OKMessage(w, "Event updated successfully", v)
}
