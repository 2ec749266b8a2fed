package departments

import (
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/departments. The institute must exist and
// be assignable to an institute coordinator caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.DepartmentName = htmlsanitize.PlainText(in.DepartmentName)
	in.Description = htmlsanitize.Sanitize(in.Description)
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "departments.create")
	defer cancel()

	instID, _ := primitive.ObjectIDFromHex(in.InstituteID)
	_, parent, err := h.own.Institute(ctx, instID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Create, Kind: accesspolicy.Department, Parent: parent}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	exists, err := h.store.NameExistsInInstitute(ctx, in.DepartmentName, instID, primitive.NilObjectID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if exists {
		respond.Error(w, r, h.Log, apierr.Conflict(msgDuplicate))
		return
	}

	_, _, by, _ := authz.UserCtx(r)
	d := models.Department{
		Name:        in.DepartmentName,
		InstituteID: instID,
		Image:       in.DepartmentImage,
		Description: in.Description,
		ModifiedBy:  &by,
	}
	if in.CoordinatorID != "" {
		cid, _ := primitive.ObjectIDFromHex(in.CoordinatorID)
		d.CoordinatorID = &cid
	}

	created, err := h.store.Create(ctx, d)
	if err != nil {
		respond.Error(w, r, h.Log, translate(err))
		return
	}
	h.Log.Info("department created",
		zap.String("department_id", created.ID.Hex()),
		zap.String("institute_id", instID.Hex()))

	v, err := populate.Department(ctx, h.DB, created.ID)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Department"))
		return
	}
	respond.Created(w, "Department created successfully", v)
}
