package institutes

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

const msgDuplicate = "Institute with this name already exists in this city"

// HandleCreate handles POST /api/institutes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Create, Kind: accesspolicy.Institute}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.InstituteName = htmlsanitize.PlainText(in.InstituteName)
	in.City = htmlsanitize.PlainText(in.City)
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "institutes.create")
	defer cancel()

	exists, err := h.store.NameExistsInCity(ctx, in.InstituteName, in.City, primitive.NilObjectID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if exists {
		respond.Error(w, r, h.Log, apierr.Conflict(msgDuplicate))
		return
	}

	_, _, by, _ := authz.UserCtx(r)
	inst := models.Institute{
		Name:       in.InstituteName,
		City:       in.City,
		Image:      in.InstituteImage,
		ModifiedBy: &by,
	}
	if in.CoordinatorID != "" {
		cid, _ := primitive.ObjectIDFromHex(in.CoordinatorID)
		inst.CoordinatorID = &cid
	}

	created, err := h.store.Create(ctx, inst)
	if err != nil {
		respond.Error(w, r, h.Log, translate(err))
		return
	}
	h.Log.Info("institute created", zap.String("institute_id", created.ID.Hex()), zap.String("by", by.Hex()))

	v, err := populate.Institute(ctx, h.DB, created.ID)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Institute"))
		return
	}
	respond.Created(w, "Institute created successfully", v)
}
