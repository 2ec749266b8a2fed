package accesspolicy

// check is one condition a non-admin caller must satisfy.
type check func(Request) bool

func always(Request) bool { return true }

// assignable is the shared "coordinatorId unset or equal to the caller" test.
// A nil record means the handler did not supply it, which never passes.
func assignable(owner func(*Record) string, rec *Record, callerID string) bool {
	if rec == nil {
		return false
	}
	id := owner(rec)
	return id == "" || id == callerID
}

func coordinatorOf(r *Record) string { return r.CoordinatorID }

// targetAssignable applies the assignable test to the record being changed.
func targetAssignable(req Request) bool {
	return assignable(coordinatorOf, req.Target, req.Caller.ID)
}

// parentAssignable applies it to the record a new entity is attached to.
func parentAssignable(req Request) bool {
	return assignable(coordinatorOf, req.Parent, req.Caller.ID)
}

// assignedAt walks from the target (or the create parent) up the owning
// chain to the record of the given kind and applies the assignable test there.
func assignedAt(level Kind) check {
	return func(req Request) bool {
		return assignable(coordinatorOf, ancestor(subject(req), level), req.Caller.ID)
	}
}

// createdByCaller requires the record of the given kind in the chain to have
// been created by the caller. Unlike coordinator ownership, an unset creator
// does not pass.
func createdByCaller(level Kind) check {
	return func(req Request) bool {
		rec := ancestor(subject(req), level)
		return rec != nil && rec.CreatedBy != "" && rec.CreatedBy == req.Caller.ID
	}
}

func self(req Request) bool {
	return req.Target != nil && req.Target.ID != "" && req.Target.ID == req.Caller.ID
}

// subject is the record ownership is evaluated against: the target for
// existing records, the parent when creating.
func subject(req Request) *Record {
	if req.Target != nil {
		return req.Target
	}
	return req.Parent
}

func ancestor(rec *Record, kind Kind) *Record {
	for r := rec; r != nil; r = r.Parent {
		if r.Kind == kind {
			return r
		}
	}
	return nil
}
