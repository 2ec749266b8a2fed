package institutes

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/patch"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// HandleEdit handles PATCH /api/institutes/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Institute")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "institutes.edit")
	defer cancel()

	stored, rec, err := h.own.Institute(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Update, Kind: accesspolicy.Institute, Target: rec}); err != nil {
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

	set := bson.M{}
	name, city := stored.Name, stored.City
	if in.InstituteName != nil {
		name = htmlsanitize.PlainText(*in.InstituteName)
		set["instituteName"] = name
	}
	if in.City != nil {
		city = htmlsanitize.PlainText(*in.City)
		set["city"] = city
	}
	if in.InstituteImage != nil {
		set["instituteImage"] = *in.InstituteImage
	}
	if in.CoordinatorID != nil {
		set["coordinatorId"] = patch.OptionalID(*in.CoordinatorID)
	}

	if in.InstituteName != nil || in.City != nil {
		exists, err := h.store.NameExistsInCity(ctx, name, city, id)
		if err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
		if exists {
			respond.Error(w, r, h.Log, apierr.Conflict(msgDuplicate))
			return
		}
	}

	_, _, by, _ := authz.UserCtx(r)
	if err := h.store.Update(ctx, id, set, by); err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(translate(err), "Institute"))
		return
	}

	v, err := populate.Institute(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Institute"))
		return
	}
	respond.OKMessage(w, "Institute updated successfully", v)
}
