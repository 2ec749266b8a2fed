package ownership_test

import (
	"errors"
	"testing"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/shared/ownership"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	if _, err := ownership.ParseID("not-an-id", "Event"); !apierr.Is(err, apierr.KindNotFound) {
		t.Errorf("malformed id: err = %v, want NotFound", err)
	}
	id := primitive.NewObjectID()
	got, err := ownership.ParseID(id.Hex(), "Event")
	if err != nil || got != id {
		t.Errorf("ParseID(%s) = %v, %v", id.Hex(), got, err)
	}
}

func TestLoader_ParticipantChain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ic, dc, ec, student := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	inst := fx.CreateInstitute(ctx, "Darshan University", &ic)
	dept := fx.CreateDepartment(ctx, "Computer", inst.ID, &dc)
	ev := fx.CreateEvent(ctx, "Hackathon", dept.ID, &ec, 10)
	g := fx.CreateGroup(ctx, "Alpha", ev.ID, &student)
	p := fx.CreateParticipant(ctx, "Asha", g.ID)

	_, rec, err := ownership.New(db).Participant(ctx, p.ID)
	if err != nil {
		t.Fatalf("Participant: %v", err)
	}

	want := []struct {
		kind  accesspolicy.Kind
		id    string
		owner string
	}{
		{accesspolicy.Participant, p.ID.Hex(), ""},
		{accesspolicy.Group, g.ID.Hex(), ""},
		{accesspolicy.Event, ev.ID.Hex(), ec.Hex()},
		{accesspolicy.Department, dept.ID.Hex(), dc.Hex()},
		{accesspolicy.Institute, inst.ID.Hex(), ic.Hex()},
	}
	r := rec
	for _, w := range want {
		if r == nil {
			t.Fatalf("chain ended before %s", w.kind)
		}
		if r.Kind != w.kind || r.ID != w.id || r.CoordinatorID != w.owner {
			t.Errorf("got %s/%s owner %q, want %s/%s owner %q", r.Kind, r.ID, r.CoordinatorID, w.kind, w.id, w.owner)
		}
		r = r.Parent
	}
	if r != nil {
		t.Errorf("unexpected record above institute: %+v", r)
	}
	if rec.Parent.CreatedBy != student.Hex() {
		t.Errorf("group createdBy = %q, want %s", rec.Parent.CreatedBy, student.Hex())
	}
}

func TestLoader_MissingAncestorIsDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inst := fx.CreateInstitute(ctx, "Darshan University", nil)
	dept := fx.CreateDepartment(ctx, "Computer", inst.ID, nil)
	ev := fx.CreateEvent(ctx, "Hackathon", dept.ID, nil, 10)
	if _, err := db.Collection("departments").DeleteOne(ctx, bson.M{"_id": dept.ID}); err != nil {
		t.Fatalf("delete department: %v", err)
	}

	_, rec, err := ownership.New(db).Event(ctx, ev.ID)
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if rec.Parent != nil {
		t.Errorf("expected no parent for orphaned event, got %+v", rec.Parent)
	}

	dc := testutil.CoordinatorUser("department_coordinator")
	req := accesspolicy.Request{
		Caller: accesspolicy.Caller{ID: dc.ID, Role: accesspolicy.RoleDepartmentCoordinator},
		Action: accesspolicy.Update,
		Kind:   accesspolicy.Event,
		Target: rec,
	}
	if accesspolicy.Allowed(req) {
		t.Error("department coordinator allowed on an event with no department")
	}
}

func TestLoader_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := ownership.New(db).Group(ctx, primitive.NewObjectID())
	if !apierr.Is(err, apierr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Message != "Group not found" {
		t.Errorf("message = %v", err)
	}
}
