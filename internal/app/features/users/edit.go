package users

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

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
	"go.uber.org/zap"
)

// HandleEdit handles PATCH /api/users/{id}. Users edit their own profile;
// only admins may change a role. Email and password are not editable here.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "User")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	target := ownership.UserRecord(id)
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Update, Kind: accesspolicy.User, Target: target}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var body map[string]any
	if err := respond.Decode(w, r, &body); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	permitted := accesspolicy.Permit(body, accesspolicy.UserUpdateFields(authz.Caller(r), target))

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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "users.edit")
	defer cancel()

	set := bson.M{}
	if in.Name != nil {
		set["name"] = htmlsanitize.PlainText(*in.Name)
	}
	if in.Phone != nil {
		set["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		set["role"] = strings.TrimSpace(*in.Role)
	}
	if in.InstituteID != nil {
		inst := patch.OptionalID(*in.InstituteID)
		if inst != nil {
			if _, _, err := h.own.Institute(ctx, *inst); err != nil {
				respond.Error(w, r, h.Log, err)
				return
			}
		}
		set["instituteId"] = inst
	}
	if in.DepartmentID != nil {
		dept := patch.OptionalID(*in.DepartmentID)
		if dept != nil {
			if _, _, err := h.own.Department(ctx, *dept); err != nil {
				respond.Error(w, r, h.Log, err)
				return
			}
		}
		set["departmentId"] = dept
	}

	role, _, by, _ := authz.UserCtx(r)
	fields := changedFields(set)
	if err := h.store.Update(ctx, id, set, by); err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "User"))
		return
	}
	if in.Role != nil {
		h.Log.Info("user role changed", zap.String("user_id", id.Hex()), zap.String("role", *in.Role))
		h.Audit.UserRoleChanged(ctx, r, by, id, role, strings.TrimSpace(*in.Role))
	}
	if by != id && fields != "" {
		h.Audit.UserUpdated(ctx, r, by, id, role, fields)
	}

	v, err := populate.User(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "User"))
		return
	}
	respond.OKMessage(w, "User updated successfully", v)
}

// changedFields lists the keys of set in sorted order.
func changedFields(set bson.M) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
