package userstore_test

import (
	"testing"

	userstore "github.com/YatharthSanghavi/wt-project/internal/app/store/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/indexes"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/YatharthSanghavi/wt-project/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_NormalizesAndDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{Name: "  Asha Patel ", Email: "Asha@Example.COM", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Email != "asha@example.com" {
		t.Errorf("email: got %q", u.Email)
	}
	if u.Name != "Asha Patel" || u.NameCI != "asha patel" {
		t.Errorf("name: got %q/%q", u.Name, u.NameCI)
	}
	if u.Role != models.RoleStudent {
		t.Errorf("role: got %q, want student", u.Role)
	}

	got, err := store.GetByEmail(ctx, "ASHA@example.com")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetByEmail: %v, %v", got, err)
	}
}

func TestStore_Create_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "X", Email: "x@test.com", Role: "superuser"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{Name: "A", Email: "dup@test.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.User{Name: "B", Email: "DUP@test.com"}); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateUser(ctx, "Coord", "coord@test.com", models.RoleEventCoordinator)
	f := userstore.NewFetcher(db)

	got, err := f.FetchUser(ctx, u.ID.Hex())
	if err != nil || got == nil {
		t.Fatalf("FetchUser: %v, %v", got, err)
	}
	if got.Role != models.RoleEventCoordinator || got.Email != "coord@test.com" {
		t.Errorf("got %+v", got)
	}

	// Role changes apply on the next fetch.
	store := userstore.New(db)
	if err := store.Update(ctx, u.ID, bson.M{"role": models.RoleStudent}, primitive.NilObjectID); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = f.FetchUser(ctx, u.ID.Hex())
	if got.Role != models.RoleStudent {
		t.Errorf("role after update: got %q", got.Role)
	}

	if got, err := f.FetchUser(ctx, primitive.NewObjectID().Hex()); got != nil || err != nil {
		t.Errorf("missing user: got %v, %v", got, err)
	}
	if got, err := f.FetchUser(ctx, "not-an-id"); got != nil || err != nil {
		t.Errorf("bad id: got %v, %v", got, err)
	}
}
