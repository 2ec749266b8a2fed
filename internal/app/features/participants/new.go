package participants

import (
	"context"
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/txn"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/groups/{id}/participants. The group may not
// grow past its event's groupMaxParticipants.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	groupID, err := ownership.ParamID(r, "id", "Group")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "participants.create")
	defer cancel()

	grp, grpRec, err := h.own.Group(ctx, groupID)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Create, Kind: accesspolicy.Participant, Parent: grpRec}); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.Name = htmlsanitize.PlainText(in.Name)
	in.InstituteName = htmlsanitize.PlainText(in.InstituteName)
	in.City = htmlsanitize.PlainText(in.City)
	in.EnrollmentNumber = strings.TrimSpace(in.EnrollmentNumber)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := inputval.Struct(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ev, err := h.events.GetByID(ctx, grp.EventID)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}

	_, _, by, _ := authz.UserCtx(r)
	var created models.Participant
	err = txn.Run(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		n, err := h.store.CountByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if err := inputval.CheckGroupSize(n, ev.GroupMaxParticipants); err != nil {
			return err
		}
		created, err = h.store.Create(ctx, models.Participant{
			GroupID:          groupID,
			Name:             in.Name,
			EnrollmentNumber: in.EnrollmentNumber,
			InstituteName:    in.InstituteName,
			City:             in.City,
			Phone:            in.Phone,
			Email:            in.Email,
			IsGroupLeader:    in.IsGroupLeader,
			ModifiedBy:       &by,
		})
		return err
	})
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("participant added",
		zap.String("group_id", groupID.Hex()),
		zap.String("participant_id", created.ID.Hex()))
	respond.Created(w, "Participant added successfully", created)
}
