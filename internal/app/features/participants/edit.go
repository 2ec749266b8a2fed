package participants

import (
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authz"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// HandleEdit handles PATCH /api/participants/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Participant")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "participants.edit")
	defer cancel()

	_, rec, err := h.own.Participant(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := authz.Authorize(r, h.Metrics, accesspolicy.Request{Action: accesspolicy.Update, Kind: accesspolicy.Participant, Target: rec}); err != nil {
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
	for key, v := range map[string]*string{
		"name":          in.Name,
		"instituteName": in.InstituteName,
		"city":          in.City,
	} {
		if v != nil {
			set[key] = htmlsanitize.PlainText(*v)
		}
	}
	for key, v := range map[string]*string{
		"enrollmentNumber": in.EnrollmentNumber,
		"phone":            in.Phone,
		"email":            in.Email,
	} {
		if v != nil {
			set[key] = strings.TrimSpace(*v)
		}
	}
	if in.IsGroupLeader != nil {
		set["isGroupLeader"] = *in.IsGroupLeader
	}

	_, _, by, _ := authz.UserCtx(r)
	if err := h.store.Update(ctx, id, set, by); err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Participant"))
		return
	}
	p, err := h.store.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Participant"))
		return
	}
	respond.OKMessage(w, "Participant updated successfully", p)
}
