// Package authz adapts the signed-in user to the access policy.
package authz

import (
	"net/http"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, ObjectID and a found
// flag. A missing user or a malformed id yields "visitor" and ok=false.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// Caller converts the request's user into a policy caller. Anonymous
// requests get the zero Caller.
func Caller(r *http.Request) accesspolicy.Caller {
	role, _, id, ok := UserCtx(r)
	if !ok {
		return accesspolicy.Caller{}
	}
	return accesspolicy.Caller{ID: id.Hex(), Role: accesspolicy.ParseRole(role)}
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	return Caller(r).Role == accesspolicy.RoleAdmin
}

// Authorize fills in the caller, evaluates the policy and records the
// outcome. A denial comes back as a Forbidden error carrying the policy's
// reason.
func Authorize(r *http.Request, m *metrics.Metrics, req accesspolicy.Request) error {
	req.Caller = Caller(r)
	d := accesspolicy.Decide(req)
	m.Decision(string(req.Kind), string(req.Action), d.Allowed)
	if !d.Allowed {
		return apierr.Forbidden(d.Reason)
	}
	return nil
}
