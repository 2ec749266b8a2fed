package departments

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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleEdit handles PATCH /api/departments/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Department")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "departments.edit")
	defer cancel()

	stored, rec, err := h.own.Department(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Update, Kind: accesspolicy.Department, Target: rec}); err != nil {
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
	name, instID := stored.Name, stored.InstituteID
	if in.DepartmentName != nil {
		name = htmlsanitize.PlainText(*in.DepartmentName)
		set["departmentName"] = name
	}
	if in.InstituteID != nil {
		instID, _ = primitive.ObjectIDFromHex(*in.InstituteID)
		if _, _, err := h.own.Institute(ctx, instID); err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
		set["instituteId"] = instID
	}
	if in.DepartmentImage != nil {
		set["departmentImage"] = *in.DepartmentImage
	}
	if in.Description != nil {
		set["description"] = htmlsanitize.Sanitize(*in.Description)
	}
	if in.CoordinatorID != nil {
		set["coordinatorId"] = patch.OptionalID(*in.CoordinatorID)
	}

	if in.DepartmentName != nil || in.InstituteID != nil {
		exists, err := h.store.NameExistsInInstitute(ctx, name, instID, id)
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
		respond.Error(w, r, h.Log, ownership.NotFound(translate(err), "Department"))
		return
	}

	v, err := populate.Department(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Department"))
		return
	}
	respond.OKMessage(w, "Department updated successfully", v)
}
