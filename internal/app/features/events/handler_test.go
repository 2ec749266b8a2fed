package events_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/events"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/deleteguard"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/indexes"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/YatharthSanghavi/wt-project/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const msgMinOverMax = "Minimum participants cannot be greater than maximum participants"

type env struct {
	h    *events.Handler
	fx   *testutil.Fixtures
	dept models.Department
}

func newTestEnv(t *testing.T, deptCoordinator *primitive.ObjectID) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	inst := fx.CreateInstitute(ctx, "Darshan University", nil)
	dept := fx.CreateDepartment(ctx, "Computer", inst.ID, deptCoordinator)

	return env{h: events.NewHandler(db, deleteguard.New(db, nil, logger), nil, logger), fx: fx, dept: dept}
}

func (e env) storedEvent(t *testing.T, id primitive.ObjectID) models.Event {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var ev models.Event
	if err := e.fx.DB().Collection("events").FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		t.Fatalf("load event: %v", err)
	}
	return ev
}

func (e env) patch(t *testing.T, id string, user testutil.TestUser, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.JSONRequest(t, "PATCH", "/api/events/"+id, body)
	req = testutil.WithChiURLParam(req, "id", id)
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()
	e.h.HandleEdit(rec, req)
	return rec
}

func TestHandleCreate_BoundsRejected(t *testing.T) {
	e := newTestEnv(t, nil)

	req := testutil.JSONRequest(t, "POST", "/api/events", map[string]any{
		"eventName":            "Hackathon",
		"departmentId":         e.dept.ID.Hex(),
		"groupMinParticipants": 5,
		"groupMaxParticipants": 3,
		"maxGroupsAllowed":     10,
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != msgMinOverMax {
		t.Errorf("message = %q", msg)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := e.fx.DB().Collection("events").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("expected no events, got %d", n)
	}
}

func TestHandleCreate_MissingBounds(t *testing.T) {
	e := newTestEnv(t, nil)

	req := testutil.JSONRequest(t, "POST", "/api/events", map[string]any{
		"eventName":    "Hackathon",
		"departmentId": e.dept.ID.Hex(),
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Minimum participants is required." {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleCreate_DepartmentCoordinator(t *testing.T) {
	coord := testutil.CoordinatorUser("department_coordinator")
	e := newTestEnv(t, testutil.Ptr(coord.OID()))

	req := testutil.JSONRequest(t, "POST", "/api/events", map[string]any{
		"eventName":            "Hackathon",
		"departmentId":         e.dept.ID.Hex(),
		"groupMinParticipants": 2,
		"groupMaxParticipants": 4,
		"maxGroupsAllowed":     10,
		"fees":                 250,
	})
	req = testutil.WithUser(req, coord)
	rec := httptest.NewRecorder()
	e.h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Event created successfully" {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleEdit_MaxBelowStoredMin(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, nil, 10)

	// Rejected identically on retry; storage stays at 2..4.
	for i := 0; i < 2; i++ {
		rec := e.patch(t, ev.ID.Hex(), testutil.AdminUser(), map[string]any{"groupMaxParticipants": 1})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected status %d, got %d", i, http.StatusBadRequest, rec.Code)
		}
		if msg := testutil.DecodeEnvelope(t, rec).Message; msg != msgMinOverMax {
			t.Errorf("attempt %d: message = %q", i, msg)
		}
	}

	got := e.storedEvent(t, ev.ID)
	if got.GroupMinParticipants != 2 || got.GroupMaxParticipants != 4 {
		t.Errorf("stored bounds changed to %d..%d", got.GroupMinParticipants, got.GroupMaxParticipants)
	}
}

func TestHandleEdit_ExplicitZeroMin(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, nil, 10)

	rec := e.patch(t, ev.ID.Hex(), testutil.AdminUser(), map[string]any{"groupMinParticipants": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Minimum participants must be at least 1" {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleEdit_ValidBounds(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, nil, 10)

	rec := e.patch(t, ev.ID.Hex(), testutil.AdminUser(), map[string]any{"groupMaxParticipants": 6})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	got := e.storedEvent(t, ev.ID)
	if got.GroupMinParticipants != 2 || got.GroupMaxParticipants != 6 {
		t.Errorf("stored bounds = %d..%d, want 2..6", got.GroupMinParticipants, got.GroupMaxParticipants)
	}
}

func TestHandleEdit_Coordinators(t *testing.T) {
	deptCoord := testutil.CoordinatorUser("department_coordinator")
	e := newTestEnv(t, testutil.Ptr(deptCoord.OID()))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	evCoord := testutil.CoordinatorUser("event_coordinator")
	stranger := testutil.CoordinatorUser("event_coordinator")
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, testutil.Ptr(evCoord.OID()), 10)

	body := map[string]any{"eventLocation": "Lab 3"}
	if rec := e.patch(t, ev.ID.Hex(), evCoord, body); rec.Code != http.StatusOK {
		t.Errorf("event coordinator: status %d", rec.Code)
	}
	if rec := e.patch(t, ev.ID.Hex(), deptCoord, body); rec.Code != http.StatusOK {
		t.Errorf("department coordinator: status %d", rec.Code)
	}
	rec := e.patch(t, ev.ID.Hex(), stranger, body)
	if rec.Code != http.StatusForbidden {
		t.Errorf("unassigned coordinator: status %d, want %d", rec.Code, http.StatusForbidden)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Not authorized to update this event" {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleEdit_ClearCoordinator(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	evCoord := testutil.CoordinatorUser("event_coordinator")
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, testutil.Ptr(evCoord.OID()), 10)

	rec := e.patch(t, ev.ID.Hex(), testutil.AdminUser(), map[string]any{"coordinatorId": ""})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	n, err := e.fx.DB().Collection("events").CountDocuments(ctx, bson.M{"_id": ev.ID, "coordinatorId": bson.M{"$exists": true}})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Error("coordinatorId stored after clearing")
	}
	got := e.storedEvent(t, ev.ID)
	if got.CoordinatorID != nil {
		t.Errorf("coordinatorId = %v, want unset", got.CoordinatorID)
	}
	if got.ModifiedBy == nil {
		t.Error("modifiedBy not stamped")
	}
}

func TestHandleDelete_BlockedByGroups(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, nil, 10)
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		e.fx.CreateGroup(ctx, name, ev.ID, nil)
	}

	del := func() *httptest.ResponseRecorder {
		req := testutil.NewRequest("DELETE", "/api/events/"+ev.ID.Hex())
		req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
		req = testutil.WithUser(req, testutil.AdminUser())
		rec := httptest.NewRecorder()
		e.h.HandleDelete(rec, req)
		return rec
	}

	rec := del()
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	want := "Cannot delete event with 3 registered group(s). Please remove all groups first."
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}

	if _, err := e.fx.DB().Collection("groups").DeleteMany(ctx, bson.M{"eventId": ev.ID}); err != nil {
		t.Fatalf("delete groups: %v", err)
	}
	if rec := del(); rec.Code != http.StatusOK {
		t.Fatalf("expected status %d after removing groups, got %d", http.StatusOK, rec.Code)
	}
	if n, _ := e.fx.DB().Collection("events").CountDocuments(ctx, bson.M{"_id": ev.ID}); n != 0 {
		t.Error("event still present")
	}
}

func TestServeView_RegistrationCounts(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, nil, 5)
	e.fx.CreateGroup(ctx, "Alpha", ev.ID, nil)
	e.fx.CreateGroup(ctx, "Beta", ev.ID, nil)

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/api/events/"+ev.ID.Hex()), "id", ev.ID.Hex())
	rec := httptest.NewRecorder()
	e.h.ServeView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var got struct {
		EventName        string `json:"eventName"`
		RegisteredGroups int64  `json:"registeredGroups"`
		SpotsRemaining   int64  `json:"spotsRemaining"`
		DepartmentID     struct {
			Name      string `json:"departmentName"`
			Institute struct {
				Name string `json:"instituteName"`
			} `json:"instituteId"`
		} `json:"departmentId"`
	}
	testutil.DecodeEnvelope(t, rec).DecodeData(t, &got)
	if got.RegisteredGroups != 2 || got.SpotsRemaining != 3 {
		t.Errorf("registered=%d remaining=%d, want 2 and 3", got.RegisteredGroups, got.SpotsRemaining)
	}
	if got.DepartmentID.Name != "Computer" || got.DepartmentID.Institute.Name != "Darshan University" {
		t.Errorf("department chain not populated: %+v", got.DepartmentID)
	}
}

func TestServeSummary(t *testing.T) {
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, nil, 10)
	paid := e.fx.CreateGroup(ctx, "Alpha", ev.ID, nil)
	other := e.fx.CreateGroup(ctx, "Beta", ev.ID, nil)
	e.fx.CreateParticipant(ctx, "Asha", paid.ID)
	e.fx.CreateParticipant(ctx, "Ravi", paid.ID)
	e.fx.CreateParticipant(ctx, "Meera", other.ID)
	if _, err := e.fx.DB().Collection("groups").UpdateByID(ctx, paid.ID, bson.M{"$set": bson.M{"isPaymentDone": true, "isPresent": true}}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/api/events/"+ev.ID.Hex()+"/summary"), "id", ev.ID.Hex())
	rec := httptest.NewRecorder()
	e.h.ServeSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var got struct {
		TotalGroups       int64 `json:"totalGroups"`
		TotalParticipants int64 `json:"totalParticipants"`
		PaidGroups        int64 `json:"paidGroups"`
		PresentGroups     int64 `json:"presentGroups"`
		SpotsRemaining    int64 `json:"spotsRemaining"`
	}
	testutil.DecodeEnvelope(t, rec).DecodeData(t, &got)
	if got.TotalGroups != 2 || got.TotalParticipants != 3 || got.PaidGroups != 1 || got.PresentGroups != 1 || got.SpotsRemaining != 8 {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestWinners(t *testing.T) {
	evCoord := testutil.CoordinatorUser("event_coordinator")
	e := newTestEnv(t, nil)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, e.fx.DB()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}

	ev := e.fx.CreateEvent(ctx, "Hackathon", e.dept.ID, testutil.Ptr(evCoord.OID()), 10)
	other := e.fx.CreateEvent(ctx, "Quiz", e.dept.ID, nil, 10)
	alpha := e.fx.CreateGroup(ctx, "Alpha", ev.ID, nil)
	beta := e.fx.CreateGroup(ctx, "Beta", ev.ID, nil)
	outsider := e.fx.CreateGroup(ctx, "Gamma", other.ID, nil)

	add := func(user testutil.TestUser, groupID primitive.ObjectID, seq int) *httptest.ResponseRecorder {
		req := testutil.JSONRequest(t, "POST", "/api/events/"+ev.ID.Hex()+"/winners", map[string]any{
			"groupId":  groupID.Hex(),
			"sequence": seq,
		})
		req = testutil.WithChiURLParam(req, "id", ev.ID.Hex())
		req = testutil.WithUser(req, user)
		rec := httptest.NewRecorder()
		e.h.HandleAddWinner(rec, req)
		return rec
	}

	if rec := add(evCoord, alpha.ID, 1); rec.Code != http.StatusCreated {
		t.Fatalf("first place: status %d: %s", rec.Code, rec.Body.String())
	}

	rec := add(evCoord, beta.ID, 1)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("taken position: status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "This position already has a winner for the event" {
		t.Errorf("message = %q", msg)
	}

	rec = add(evCoord, outsider.ID, 2)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("group of another event: status %d", rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Group is not registered for this event" {
		t.Errorf("message = %q", msg)
	}

	if rec := add(evCoord, beta.ID, 4); rec.Code != http.StatusBadRequest {
		t.Errorf("sequence 4: status %d", rec.Code)
	}
	if rec := add(testutil.StudentUser(), beta.ID, 2); rec.Code != http.StatusForbidden {
		t.Errorf("student: status %d, want %d", rec.Code, http.StatusForbidden)
	}

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/api/events/"+ev.ID.Hex()+"/winners"), "id", ev.ID.Hex())
	list := httptest.NewRecorder()
	e.h.ServeWinners(list, req)
	if list.Code != http.StatusOK {
		t.Fatalf("list winners: status %d", list.Code)
	}
	if c := testutil.DecodeEnvelope(t, list).Count; c == nil || *c != 1 {
		t.Errorf("winner count = %v, want 1", c)
	}
}
