package auditlog_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/app/features/auditlog"
	"github.com/YatharthSanghavi/wt-project/internal/app/store/audit"
	"github.com/YatharthSanghavi/wt-project/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func seed(t *testing.T) (*auditlog.Handler, primitive.ObjectID) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	events := []audit.Event{
		{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, UserID: &userID, Success: true, Timestamp: time.Now().Add(-2 * time.Hour)},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: &userID, FailureReason: "invalid password"},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedUserNotFound, FailureReason: "user not found"},
		{Category: audit.CategoryAdmin, EventType: audit.EventUserRoleChanged, UserID: &userID, Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return auditlog.NewHandler(db, zap.NewNop()), userID
}

func get(h *auditlog.Handler, caller *testutil.TestUser, query url.Values) *httptest.ResponseRecorder {
	req := testutil.NewRequest("GET", "/?"+query.Encode())
	if caller != nil {
		req = testutil.WithUser(req, *caller)
	}
	rec := httptest.NewRecorder()
	auditlog.Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestServeList_Filters(t *testing.T) {
	h, userID := seed(t)
	admin := testutil.AdminUser()

	tests := []struct {
		name  string
		query url.Values
		want  int
	}{
		{"all", url.Values{}, 4},
		{"category", url.Values{"category": {"auth"}}, 3},
		{"event type", url.Values{"event_type": {audit.EventLoginFailedUserNotFound}}, 1},
		{"user", url.Values{"user": {userID.Hex()}}, 3},
		{"since", url.Values{"since": {time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)}}, 3},
		{"limit", url.Values{"limit": {"2"}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(h, &admin, tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
			}
			env := testutil.DecodeEnvelope(t, rec)
			if env.Count == nil || *env.Count != tt.want {
				t.Fatalf("expected count %d, got %v", tt.want, env.Count)
			}
		})
	}
}

func TestServeList_NewestFirst(t *testing.T) {
	h, _ := seed(t)
	admin := testutil.AdminUser()

	rec := get(h, &admin, url.Values{})
	var events []struct {
		EventType string    `json:"eventType"`
		Timestamp time.Time `json:"timestamp"`
	}
	testutil.DecodeEnvelope(t, rec).DecodeData(t, &events)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if last := events[len(events)-1]; last.EventType != audit.EventLoginSuccess {
		t.Errorf("oldest event should be last, got %q", last.EventType)
	}
}

func TestServeList_BadQuery(t *testing.T) {
	h, _ := seed(t)
	admin := testutil.AdminUser()

	for _, q := range []url.Values{
		{"category": {"billing"}},
		{"user": {"not-an-id"}},
		{"since": {"yesterday"}},
		{"limit": {"0"}},
	} {
		if rec := get(h, &admin, q); rec.Code != http.StatusBadRequest {
			t.Errorf("query %v: expected status %d, got %d", q, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestServeList_AdminOnly(t *testing.T) {
	h, _ := seed(t)
	coordinator := testutil.CoordinatorUser("institute_coordinator")

	if rec := get(h, nil, url.Values{}); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if rec := get(h, &coordinator, url.Values{}); rec.Code != http.StatusForbidden {
		t.Errorf("coordinator: expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}
