package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/audit"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/authutil"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/YatharthSanghavi/wt-project/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdmin(ctx, deps, "Admin@Test.com", "Root", "s3cret-pass", nil, testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&user); err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
	if user.Name != "Root" {
		t.Errorf("expected name 'Root', got %q", user.Name)
	}
	if !authutil.CheckPassword("s3cret-pass", user.PasswordHash) {
		t.Error("stored hash does not match the configured password")
	}
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateUser(ctx, "Existing User", "existing@test.com", models.RoleStudent)

	deps := DBDeps{MongoDatabase: db}
	al := newAuditLogger(AppConfig{AuditAdmin: "db"}, db, testLogger())
	if err := ensureAdmin(ctx, deps, "existing@test.com", "", "", al, testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected role 'admin', got %q", user.Role)
	}
	if user.Name != "Existing User" {
		t.Errorf("name changed to %q", user.Name)
	}

	events, err := audit.New(db).GetByUser(ctx, existing.ID, 10)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(events) != 1 || events[0].EventType != audit.EventAdminBootstrapped || events[0].Details["action"] != "promoted" {
		t.Errorf("audit events = %+v", events)
	}
}

func TestEnsureAdmin_MissingWithoutPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "nobody@test.com", "", "", nil, testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users, got %d", n)
	}
}

func TestEnsureAdmin_RejectsWeakPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "admin@test.com", "", "password", nil, testLogger()); err == nil {
		t.Fatal("expected a common password to be rejected")
	}
}

func TestValidateConfig(t *testing.T) {
	base := AppConfig{
		MongoURI:     "mongodb://localhost:27017",
		TokenHashKey: devTokenKey,
	}
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	if err := ValidateConfig(dev, base, testLogger()); err != nil {
		t.Errorf("dev config rejected: %v", err)
	}
	if err := ValidateConfig(prod, base, testLogger()); err == nil {
		t.Error("expected the development token key to be rejected in prod")
	}

	bad := base
	bad.TokenHashKey = "short"
	if err := ValidateConfig(dev, bad, testLogger()); err == nil {
		t.Error("expected a short hash key to be rejected")
	}

	bad = base
	bad.TokenBlockKey = "0123456789"
	if err := ValidateConfig(dev, bad, testLogger()); err == nil {
		t.Error("expected a 10-byte block key to be rejected")
	}

	bad = base
	bad.AuditAdmin = "everything"
	if err := ValidateConfig(dev, bad, testLogger()); err == nil {
		t.Error("expected an unknown audit mode to be rejected")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test , ,http://b.test")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("expected nil for an empty list")
	}
}

func TestBuildHandler_Routes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	appCfg := AppConfig{
		TokenHashKey:    devTokenKey,
		CORSOrigins:     []string{"*"},
		LoginIPLimit:    5,
		LoginEmailLimit: 5,
	}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, appCfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}
	t.Cleanup(func() { loginLimiter.Stop(); loginLimiter = nil })

	cases := []struct {
		method, path string
		status       int
		message      string
	}{
		{"GET", "/api/health", http.StatusOK, "Server is running!"},
		{"GET", "/api/nope", http.StatusNotFound, "Route not found"},
		{"GET", "/api/institutes", http.StatusOK, ""},
		{"POST", "/api/institutes", http.StatusUnauthorized, "Not authorized, no token"},
		{"GET", "/api/groups", http.StatusUnauthorized, "Not authorized, no token"},
		{"GET", "/api/auth/me", http.StatusUnauthorized, "Not authorized, no token"},
		{"GET", "/api/audit", http.StatusUnauthorized, "Not authorized, no token"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.status {
			t.Errorf("%s %s: status %d, want %d", tc.method, tc.path, rec.Code, tc.status)
			continue
		}
		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s %s: bad body: %v", tc.method, tc.path, err)
			continue
		}
		if tc.message != "" && body.Message != tc.message {
			t.Errorf("%s %s: message %q, want %q", tc.method, tc.path, body.Message, tc.message)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics status %d", rec.Code)
	}
}
