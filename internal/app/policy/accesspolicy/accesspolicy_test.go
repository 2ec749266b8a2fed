package accesspolicy_test

import (
	"testing"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newID() string { return primitive.NewObjectID().Hex() }

func caller(role accesspolicy.Role) accesspolicy.Caller {
	return accesspolicy.Caller{ID: newID(), Role: role}
}

var nonAdminRoles = []accesspolicy.Role{
	accesspolicy.RoleInstituteCoordinator,
	accesspolicy.RoleDepartmentCoordinator,
	accesspolicy.RoleEventCoordinator,
	accesspolicy.RoleStudent,
}

func TestDecide_AdminAllowedEverything(t *testing.T) {
	admin := caller(accesspolicy.RoleAdmin)
	kinds := []accesspolicy.Kind{
		accesspolicy.Institute, accesspolicy.Department, accesspolicy.Event,
		accesspolicy.Group, accesspolicy.Participant, accesspolicy.Winner, accesspolicy.User,
	}
	actions := []accesspolicy.Action{accesspolicy.Create, accesspolicy.Read, accesspolicy.Update, accesspolicy.Delete}
	for _, k := range kinds {
		for _, a := range actions {
			d := accesspolicy.Decide(accesspolicy.Request{Caller: admin, Action: a, Kind: k})
			assert.Truef(t, d.Allowed, "admin %s %s", a, k)
		}
	}
}

func TestDecide_NonAdminCannotDelete(t *testing.T) {
	for _, role := range nonAdminRoles {
		c := caller(role)
		for _, k := range []accesspolicy.Kind{accesspolicy.Institute, accesspolicy.Department, accesspolicy.Event, accesspolicy.User} {
			// Even a record the caller coordinates (or is) cannot be deleted.
			target := &accesspolicy.Record{Kind: k, ID: c.ID, CoordinatorID: c.ID}
			d := accesspolicy.Decide(accesspolicy.Request{Caller: c, Action: accesspolicy.Delete, Kind: k, Target: target})
			assert.Falsef(t, d.Allowed, "%s delete %s", role, k)
			assert.Equal(t, "Not authorized to delete this "+string(k), d.Reason)
		}
	}
}

func TestDecide_InstituteWritesAdminOnly(t *testing.T) {
	for _, role := range nonAdminRoles {
		c := caller(role)
		inst := &accesspolicy.Record{Kind: accesspolicy.Institute, ID: newID(), CoordinatorID: c.ID}
		assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: c, Action: accesspolicy.Create, Kind: accesspolicy.Institute}))
		assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: c, Action: accesspolicy.Update, Kind: accesspolicy.Institute, Target: inst}))
	}
}

func TestDecide_PublicReads(t *testing.T) {
	visitor := accesspolicy.Caller{}
	for _, k := range []accesspolicy.Kind{accesspolicy.Institute, accesspolicy.Department, accesspolicy.Event, accesspolicy.Winner} {
		assert.Truef(t, accesspolicy.Allowed(accesspolicy.Request{Caller: visitor, Action: accesspolicy.Read, Kind: k}), "read %s", k)
	}
	assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: visitor, Action: accesspolicy.Read, Kind: accesspolicy.Group}))
	assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: visitor, Action: accesspolicy.Create, Kind: accesspolicy.Group}))
}

func TestDecide_CreateDepartment(t *testing.T) {
	a := caller(accesspolicy.RoleInstituteCoordinator)
	b := newID()

	own := &accesspolicy.Record{Kind: accesspolicy.Institute, ID: newID(), CoordinatorID: a.ID}
	other := &accesspolicy.Record{Kind: accesspolicy.Institute, ID: newID(), CoordinatorID: b}
	unassigned := &accesspolicy.Record{Kind: accesspolicy.Institute, ID: newID()}

	req := func(parent *accesspolicy.Record) accesspolicy.Request {
		return accesspolicy.Request{Caller: a, Action: accesspolicy.Create, Kind: accesspolicy.Department, Parent: parent}
	}

	assert.True(t, accesspolicy.Allowed(req(own)))
	assert.True(t, accesspolicy.Allowed(req(unassigned)))

	d := accesspolicy.Decide(req(other))
	require.False(t, d.Allowed)
	assert.Equal(t, "Not authorized to create this department", d.Reason)

	// Missing parent fails closed.
	assert.False(t, accesspolicy.Allowed(req(nil)))

	// Department coordinators are not in the create row.
	dc := caller(accesspolicy.RoleDepartmentCoordinator)
	assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: dc, Action: accesspolicy.Create, Kind: accesspolicy.Department, Parent: unassigned}))
}

// A department coordinator cannot open a department, even under an
// institute nobody coordinates; an admin creates it with them assigned,
// after which they manage it.
func TestDecide_DepartmentCoordinatorOnboarding(t *testing.T) {
	bob := caller(accesspolicy.RoleDepartmentCoordinator)
	admin := caller(accesspolicy.RoleAdmin)
	x := &accesspolicy.Record{Kind: accesspolicy.Institute, ID: newID()}

	create := func(c accesspolicy.Caller) accesspolicy.Decision {
		return accesspolicy.Decide(accesspolicy.Request{Caller: c, Action: accesspolicy.Create, Kind: accesspolicy.Department, Parent: x})
	}
	d := create(bob)
	assert.False(t, d.Allowed)
	assert.Equal(t, "Not authorized to create this department", d.Reason)
	assert.True(t, create(admin).Allowed)

	dept := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: bob.ID, Parent: x}
	assert.True(t, accesspolicy.Allowed(accesspolicy.Request{Caller: bob, Action: accesspolicy.Update, Kind: accesspolicy.Department, Target: dept}))
}

func TestDecide_UpdateDepartment(t *testing.T) {
	dc := caller(accesspolicy.RoleDepartmentCoordinator)
	mine := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: dc.ID}
	open := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID()}
	theirs := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: newID()}

	upd := func(c accesspolicy.Caller, target *accesspolicy.Record) bool {
		return accesspolicy.Allowed(accesspolicy.Request{Caller: c, Action: accesspolicy.Update, Kind: accesspolicy.Department, Target: target})
	}
	assert.True(t, upd(dc, mine))
	assert.True(t, upd(dc, open))
	assert.False(t, upd(dc, theirs))

	ic := accesspolicy.Caller{ID: dc.ID, Role: accesspolicy.RoleInstituteCoordinator}
	assert.False(t, upd(ic, mine))
}

func TestDecide_CreateEvent(t *testing.T) {
	dc := caller(accesspolicy.RoleDepartmentCoordinator)
	dept := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: dc.ID}
	foreign := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: newID()}

	create := func(c accesspolicy.Caller, parent *accesspolicy.Record) bool {
		return accesspolicy.Allowed(accesspolicy.Request{Caller: c, Action: accesspolicy.Create, Kind: accesspolicy.Event, Parent: parent})
	}
	assert.True(t, create(dc, dept))
	assert.False(t, create(dc, foreign))
	assert.False(t, create(caller(accesspolicy.RoleEventCoordinator), dept))
}

func TestDecide_UpdateEvent(t *testing.T) {
	ec := caller(accesspolicy.RoleEventCoordinator)
	dc := caller(accesspolicy.RoleDepartmentCoordinator)

	dept := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: dc.ID}
	otherDept := &accesspolicy.Record{Kind: accesspolicy.Department, ID: newID(), CoordinatorID: newID()}

	event := &accesspolicy.Record{Kind: accesspolicy.Event, ID: newID(), CoordinatorID: ec.ID, Parent: dept}
	foreignEvent := &accesspolicy.Record{Kind: accesspolicy.Event, ID: newID(), CoordinatorID: newID(), Parent: otherDept}

	upd := func(c accesspolicy.Caller, target *accesspolicy.Record) bool {
		return accesspolicy.Allowed(accesspolicy.Request{Caller: c, Action: accesspolicy.Update, Kind: accesspolicy.Event, Target: target})
	}

	assert.True(t, upd(ec, event))
	assert.False(t, upd(ec, foreignEvent))
	assert.True(t, upd(dc, event))
	assert.False(t, upd(dc, foreignEvent))

	// A department coordinator needs the department record to be supplied.
	orphan := &accesspolicy.Record{Kind: accesspolicy.Event, ID: newID()}
	assert.False(t, upd(dc, orphan))
	assert.False(t, upd(caller(accesspolicy.RoleStudent), event))
}

func TestDecide_Users(t *testing.T) {
	s := caller(accesspolicy.RoleStudent)
	me := &accesspolicy.Record{Kind: accesspolicy.User, ID: s.ID}
	other := &accesspolicy.Record{Kind: accesspolicy.User, ID: newID()}

	for _, a := range []accesspolicy.Action{accesspolicy.Read, accesspolicy.Update} {
		assert.True(t, accesspolicy.Allowed(accesspolicy.Request{Caller: s, Action: a, Kind: accesspolicy.User, Target: me}))
		assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: s, Action: a, Kind: accesspolicy.User, Target: other}))
	}
	// Listing users has no target.
	assert.False(t, accesspolicy.Allowed(accesspolicy.Request{Caller: s, Action: accesspolicy.Read, Kind: accesspolicy.User}))
}

func TestUserUpdateFields(t *testing.T) {
	s := caller(accesspolicy.RoleStudent)
	me := &accesspolicy.Record{Kind: accesspolicy.User, ID: s.ID}

	fields := accesspolicy.UserUpdateFields(s, me)
	assert.ElementsMatch(t, []string{"name", "phone", "instituteId", "departmentId"}, fields)
	assert.NotContains(t, fields, "role")

	assert.Nil(t, accesspolicy.UserUpdateFields(s, &accesspolicy.Record{Kind: accesspolicy.User, ID: newID()}))

	admin := caller(accesspolicy.RoleAdmin)
	assert.Contains(t, accesspolicy.UserUpdateFields(admin, me), "role")
}

func TestPermit(t *testing.T) {
	body := map[string]any{"name": "Bob", "role": "admin", "email": "x@y.z"}
	got := accesspolicy.Permit(body, []string{"name", "phone"})
	assert.Equal(t, map[string]any{"name": "Bob"}, got)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, accesspolicy.RoleAdmin, accesspolicy.ParseRole(" Admin "))
	assert.Equal(t, accesspolicy.RoleVisitor, accesspolicy.ParseRole("superadmin"))
	assert.True(t, accesspolicy.RoleStudent.Valid())
	assert.False(t, accesspolicy.RoleVisitor.Valid())
}
