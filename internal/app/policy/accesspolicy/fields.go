package accesspolicy

// Self-service profile fields. Admins may additionally change the role.
var (
	userSelfFields  = []string{"name", "phone", "instituteId", "departmentId"}
	userAdminFields = append(append([]string{}, userSelfFields...), "role")

	groupOwnerFields = []string{"groupName"}
	groupStaffFields = []string{"groupName", "isPaymentDone", "isPresent"}
)

// UserUpdateFields returns the user fields the caller may change on target.
// It returns nil when the caller may not update the user at all.
func UserUpdateFields(caller Caller, target *Record) []string {
	if !Allowed(Request{Caller: caller, Action: Update, Kind: User, Target: target}) {
		return nil
	}
	if caller.Role == RoleAdmin {
		return userAdminFields
	}
	return userSelfFields
}

// GroupUpdateFields returns the group fields the caller may change. Payment
// and attendance flags are reserved for staff; the registering student may
// only rename the group.
func GroupUpdateFields(caller Caller, target *Record) []string {
	if !Allowed(Request{Caller: caller, Action: Update, Kind: Group, Target: target}) {
		return nil
	}
	if caller.Role == RoleStudent {
		return groupOwnerFields
	}
	return groupStaffFields
}

// Permit filters a decoded PATCH body down to the allowed keys. Keys that are
// absent from the body stay absent.
func Permit(body map[string]any, allowed []string) map[string]any {
	out := make(map[string]any, len(allowed))
	for _, k := range allowed {
		if v, ok := body[k]; ok {
			out[k] = v
		}
	}
	return out
}
