package events

import (
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/events. Order: body shape, department
// existence, policy, bounds.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.sanitize()
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.create")
	defer cancel()

	deptID, _ := primitive.ObjectIDFromHex(in.DepartmentID)
	_, parent, err := h.own.Department(ctx, deptID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Create, Kind: accesspolicy.Event, Parent: parent}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	b := in.bounds()
	if err := inputval.CheckEventBounds(b); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	_, _, by, _ := authz.UserCtx(r)
	e := models.Event{
		Name:                    in.EventName,
		Tagline:                 in.Tagline,
		Description:             in.Description,
		DepartmentID:            deptID,
		Image:                   in.EventImage,
		Fees:                    b.Fees,
		Prizes:                  in.Prizes,
		GroupMinParticipants:    b.GroupMin,
		GroupMaxParticipants:    b.GroupMax,
		Location:                in.EventLocation,
		MaxGroupsAllowed:        b.MaxGroups,
		StudentCoordinatorName:  in.StudentCoordinatorName,
		StudentCoordinatorPhone: strings.TrimSpace(in.StudentCoordinatorPhone),
		StudentCoordinatorEmail: inputval.NormalizeEmail(in.StudentCoordinatorEmail),
		ModifiedBy:              &by,
	}
	if in.CoordinatorID != "" {
		cid, _ := primitive.ObjectIDFromHex(in.CoordinatorID)
		e.CoordinatorID = &cid
	}

	created, err := h.store.Create(ctx, e)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("event created",
		zap.String("event_id", created.ID.Hex()),
		zap.String("department_id", deptID.Hex()))

	v, err := populate.Event(ctx, h.DB, created.ID)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}
	respond.Created(w, "Event created successfully", v)
}
