package events

import (
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList handles GET /api/events?department=&search=&location=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := populate.EventFilter{
		Search:   q.Get("search"),
		Location: q.Get("location"),
	}
	if dept := strings.TrimSpace(q.Get("department")); dept != "" {
		id, err := ownership.ParseID(dept, "Department")
		if err != nil {
			respond.Error(w, r, h.Log, err)
			return
		}
		f.DepartmentID = id
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.list")
	defer cancel()

	list, err := populate.Events(ctx, h.DB, f.Match(), nil)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}

// ServeByDepartment handles GET /api/events/department/{departmentId},
// sorted by event name.
func (h *Handler) ServeByDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "departmentId", "Department")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.by_department")
	defer cancel()

	list, err := populate.Events(ctx, h.DB, bson.M{"departmentId": id}, populate.ByName("name_ci"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.List(w, list, len(list))
}

// ServeView handles GET /api/events/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "events.view")
	defer cancel()

	v, err := populate.Event(ctx, h.DB, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}
	n, err := h.groups.CountByEvent(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, detail{
		EventView:        v,
		RegisteredGroups: n,
		SpotsRemaining:   int64(v.MaxGroupsAllowed) - n,
	})
}

// ServeSummary handles GET /api/events/{id}/summary.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	id, err := ownership.ParamID(r, "id", "Event")
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "events.summary")
	defer cancel()

	ev, err := h.store.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, ownership.NotFound(err, "Event"))
		return
	}
	st, err := h.groups.StatsForEvent(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.OK(w, summary{
		EventName:         ev.Name,
		TotalGroups:       st.Groups,
		TotalParticipants: st.Participants,
		PaidGroups:        st.Paid,
		PresentGroups:     st.Present,
		MaxGroupsAllowed:  ev.MaxGroupsAllowed,
		SpotsRemaining:    int64(ev.MaxGroupsAllowed) - st.Groups,
		Fees:              ev.Fees,
		Prizes:            ev.Prizes,
	})
}
