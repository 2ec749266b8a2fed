package groups

import (
	"encoding/json"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// HandleEdit handles PATCH /api/groups/{id}. Fields the caller may not
// change are dropped from the body before it is applied.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Group")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.edit")
	defer cancel()

	_, rec, err := h.own.Group(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Update, Kind: accesspolicy.Group, Target: rec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var body map[string]any
	if err := respond.Decode(w, r, &body); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	permitted := accesspolicy.Permit(body, accesspolicy.GroupUpdateFields(authz.Caller(r), rec))

	var in editInput
	raw, _ := json.Marshal(permitted)
	if err := json.Unmarshal(raw, &in); err != nil {
		respond.Error(w, r, h.Log, apierr.Wrap(apierr.KindValidation, "Invalid request body", err))
		return
	}
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	set := bson.M{}
	if in.GroupName != nil {
		set["groupName"] = htmlsanitize.PlainText(*in.GroupName)
	}
	if in.IsPaymentDone != nil {
		set["isPaymentDone"] = *in.IsPaymentDone
	}
	if in.IsPresent != nil {
		set["isPresent"] = *in.IsPresent
	}

	_, _, by, _ := authz.UserCtx(r)
	if err := h.store.Update(ctx, id, set, by); err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Group"))
		return
	}
	g, err := h.store.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Group"))
		return
	}
	respond.OKMessage(w, "Group updated successfully", g)
}
