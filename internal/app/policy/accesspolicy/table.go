package accesspolicy

type key struct {
	kind   Kind
	action Action
}

// rule is one row of the table. A public row allows every caller, signed in
// or not. Otherwise the caller's role must have at least one passing check.
type rule struct {
	public bool
	byRole map[Role][]check
}

// coordinators pairs each coordinator role with the level of the owning
// chain it is assigned to.
var coordinators = map[Role]Kind{
	RoleInstituteCoordinator:  Institute,
	RoleDepartmentCoordinator: Department,
	RoleEventCoordinator:      Event,
}

// chainStaff lets every coordinator role act on records below its level,
// provided the ancestor at its level is assignable to the caller.
func chainStaff() map[Role][]check {
	m := make(map[Role][]check, len(coordinators)+1)
	for role, level := range coordinators {
		m[role] = []check{assignedAt(level)}
	}
	return m
}

func withStudent(m map[Role][]check, c check) map[Role][]check {
	m[RoleStudent] = append(m[RoleStudent], c)
	return m
}

var table = map[key]rule{
	// Institutes: public reads, writes are admin-only.
	{Institute, Read}:   {public: true},
	{Institute, Create}: {},
	{Institute, Update}: {},
	{Institute, Delete}: {},

	{Department, Read}: {public: true},
	{Department, Create}: {byRole: map[Role][]check{
		RoleInstituteCoordinator: {parentAssignable},
	}},
	{Department, Update}: {byRole: map[Role][]check{
		RoleDepartmentCoordinator: {targetAssignable},
	}},
	{Department, Delete}: {},

	{Event, Read}: {public: true},
	{Event, Create}: {byRole: map[Role][]check{
		RoleDepartmentCoordinator: {parentAssignable},
	}},
	{Event, Update}: {byRole: map[Role][]check{
		RoleEventCoordinator:      {targetAssignable},
		RoleDepartmentCoordinator: {assignedAt(Department)},
	}},
	{Event, Delete}: {},

	{Group, Create}: {byRole: map[Role][]check{
		RoleStudent:               {always},
		RoleEventCoordinator:      {always},
		RoleDepartmentCoordinator: {always},
		RoleInstituteCoordinator:  {always},
	}},
	{Group, Read}:   {byRole: withStudent(chainStaff(), createdByCaller(Group))},
	{Group, Update}: {byRole: withStudent(chainStaff(), createdByCaller(Group))},
	{Group, Delete}: {byRole: map[Role][]check{
		RoleStudent:          {createdByCaller(Group)},
		RoleEventCoordinator: {assignedAt(Event)},
	}},

	{Participant, Create}: {byRole: withStudent(chainStaff(), createdByCaller(Group))},
	{Participant, Read}:   {byRole: withStudent(chainStaff(), createdByCaller(Group))},
	{Participant, Update}: {byRole: withStudent(chainStaff(), createdByCaller(Group))},
	{Participant, Delete}: {byRole: withStudent(chainStaff(), createdByCaller(Group))},

	{Winner, Read}: {public: true},
	{Winner, Create}: {byRole: map[Role][]check{
		RoleEventCoordinator:      {assignedAt(Event)},
		RoleDepartmentCoordinator: {assignedAt(Department)},
	}},
	{Winner, Delete}: {byRole: map[Role][]check{
		RoleEventCoordinator:      {assignedAt(Event)},
		RoleDepartmentCoordinator: {assignedAt(Department)},
	}},

	// Users: self or admin. Listing (no target) falls through to admin only.
	{User, Read}:   {byRole: everyRole(self)},
	{User, Update}: {byRole: everyRole(self)},
	{User, Delete}: {},
}

func everyRole(c check) map[Role][]check {
	return map[Role][]check{
		RoleInstituteCoordinator:  {c},
		RoleDepartmentCoordinator: {c},
		RoleEventCoordinator:      {c},
		RoleStudent:               {c},
	}
}
