package participants_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/participants"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/YatharthSanghavi/wt-project/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*participants.Handler, *testutil.Fixtures, models.Event) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	inst := fx.CreateInstitute(ctx, "Darshan University", nil)
	dept := fx.CreateDepartment(ctx, "Computer", inst.ID, nil)
	ev := fx.CreateEvent(ctx, "Hackathon", dept.ID, nil, 10)

	return participants.NewHandler(db, nil, zap.NewNop()), fx, ev
}

func participantBody(name string) map[string]any {
	return map[string]any{
		"name":             name,
		"enrollmentNumber": "DU-" + name,
		"instituteName":    "Darshan University",
		"city":             "Rajkot",
		"phone":            "9876543210",
		"email":            name + "@example.com",
	}
}

func add(t *testing.T, h *participants.Handler, user testutil.TestUser, g models.Group, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.JSONRequest(t, "POST", "/api/groups/"+g.ID.Hex()+"/participants", body)
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	return rec
}

func TestHandleCreate_UpToGroupMax(t *testing.T) {
	h, fx, ev := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	student := testutil.StudentUser()
	g := fx.CreateGroup(ctx, "Alpha", ev.ID, testutil.Ptr(student.OID()))

	for i := 0; i < ev.GroupMaxParticipants; i++ {
		rec := add(t, h, student, g, participantBody(fmt.Sprintf("member%d", i)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("participant %d: status %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := add(t, h, student, g, participantBody("extra"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Group already has the maximum number of participants" {
		t.Errorf("message = %q", msg)
	}

	n, err := fx.DB().Collection("participants").CountDocuments(ctx, bson.M{"groupId": g.ID})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(ev.GroupMaxParticipants) {
		t.Errorf("group has %d participants, want %d", n, ev.GroupMaxParticipants)
	}
}

func TestHandleCreate_MissingFields(t *testing.T) {
	h, fx, ev := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	g := fx.CreateGroup(ctx, "Alpha", ev.ID, nil)

	body := participantBody("asha")
	delete(body, "enrollmentNumber")
	rec := add(t, h, testutil.AdminUser(), g, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Enrollment number is required." {
		t.Errorf("message = %q", msg)
	}
}

func TestHandleCreate_OtherStudentsGroup(t *testing.T) {
	h, fx, ev := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	owner := testutil.StudentUser()
	g := fx.CreateGroup(ctx, "Alpha", ev.ID, testutil.Ptr(owner.OID()))

	rec := add(t, h, testutil.StudentUser(), g, participantBody("intruder"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if msg := testutil.DecodeEnvelope(t, rec).Message; msg != "Not authorized to create this participant" {
		t.Errorf("message = %q", msg)
	}
}

func TestServeList(t *testing.T) {
	h, fx, ev := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	coord := testutil.CoordinatorUser("event_coordinator")
	if _, err := fx.DB().Collection("events").UpdateByID(ctx, ev.ID, bson.M{"$set": bson.M{"coordinatorId": coord.OID()}}); err != nil {
		t.Fatalf("assign coordinator: %v", err)
	}
	g := fx.CreateGroup(ctx, "Alpha", ev.ID, nil)
	fx.CreateParticipant(ctx, "Asha", g.ID)
	fx.CreateParticipant(ctx, "Ravi", g.ID)

	req := testutil.NewRequest("GET", "/api/groups/"+g.ID.Hex()+"/participants")
	req = testutil.WithChiURLParam(req, "id", g.ID.Hex())
	req = testutil.WithUser(req, coord)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if c := testutil.DecodeEnvelope(t, rec).Count; c == nil || *c != 2 {
		t.Errorf("count = %v, want 2", c)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx, ev := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	student := testutil.StudentUser()
	g := fx.CreateGroup(ctx, "Alpha", ev.ID, testutil.Ptr(student.OID()))
	p := fx.CreateParticipant(ctx, "Asha", g.ID)

	req := testutil.NewRequest("DELETE", "/api/participants/"+p.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	req = testutil.WithUser(req, student)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	n, _ := fx.DB().Collection("participants").CountDocuments(ctx, bson.M{"_id": p.ID})
	if n != 0 {
		t.Error("participant still present")
	}
}
