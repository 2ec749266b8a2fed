// Package accesspolicy decides whether a caller may perform an action on an
// entity of the owning chain Institute → Department → Event → Group →
// Participant (plus User and EventWinner records).
//
// Decide is a pure function over the caller identity and the records the
// route handler already loaded; it performs no I/O. Every rule lives in the
// single decision table below, keyed by (entity kind, action) and then by
// role. Admins are allowed everything before the table is consulted.
package accesspolicy

import (
	"fmt"
	"strings"
)

// Role is the caller's role as stored on the user record.
type Role string

const (
	RoleVisitor               Role = "" // unauthenticated
	RoleAdmin                 Role = "admin"
	RoleInstituteCoordinator  Role = "institute_coordinator"
	RoleDepartmentCoordinator Role = "department_coordinator"
	RoleEventCoordinator      Role = "event_coordinator"
	RoleStudent               Role = "student"
)

// ParseRole normalizes a stored role string. Unknown values map to
// RoleVisitor so they match no rule.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleInstituteCoordinator, RoleDepartmentCoordinator, RoleEventCoordinator, RoleStudent:
		return r
	default:
		return RoleVisitor
	}
}

// Valid reports whether r is one of the five assignable roles.
func (r Role) Valid() bool {
	return r != RoleVisitor && ParseRole(string(r)) == r
}

// Kind names an entity type.
type Kind string

const (
	Institute   Kind = "institute"
	Department  Kind = "department"
	Event       Kind = "event"
	Group       Kind = "group"
	Participant Kind = "participant"
	Winner      Kind = "winner"
	User        Kind = "user"
)

// Action is what the caller wants to do.
type Action string

const (
	Create Action = "create"
	Read   Action = "read"
	Update Action = "update"
	Delete Action = "delete"
)

// Caller identifies the authenticated user. ID is the canonical hex form of
// the user's id; an empty ID with RoleVisitor means "not signed in".
type Caller struct {
	ID   string
	Role Role
}

// Record carries the ownership fields of one stored entity. Parent links to
// the owning record one step up the chain, when the handler loaded it.
type Record struct {
	Kind          Kind
	ID            string
	CoordinatorID string
	CreatedBy     string
	Parent        *Record
}

// Request is one authorization question.
//
// Target is the existing record for read/update/delete (nil for listing).
// Parent is the record a new entity will be attached to on create.
type Request struct {
	Caller Caller
	Action Action
	Kind   Kind
	Target *Record
	Parent *Record
}

// Decision is the outcome of Decide. Reason is empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

// Deny builds the standard refusal for an action on a kind.
func Deny(action Action, kind Kind) Decision {
	return Decision{Reason: fmt.Sprintf("Not authorized to %s this %s", action, kind)}
}

var allow = Decision{Allowed: true}

// Decide evaluates req against the decision table.
func Decide(req Request) Decision {
	if req.Caller.Role == RoleAdmin && req.Caller.ID != "" {
		return allow
	}

	row, ok := table[key{req.Kind, req.Action}]
	if !ok {
		return Deny(req.Action, req.Kind)
	}
	if row.public {
		return allow
	}
	if req.Caller.ID == "" || req.Caller.Role == RoleVisitor {
		return Deny(req.Action, req.Kind)
	}

	for _, c := range row.byRole[req.Caller.Role] {
		if c(req) {
			return allow
		}
	}
	return Deny(req.Action, req.Kind)
}

// Allowed is shorthand for Decide(req).Allowed.
func Allowed(req Request) bool {
	return Decide(req).Allowed
}
