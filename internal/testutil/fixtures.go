package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateUser inserts a user with the given role. The password hash is a
// placeholder; use auth tests for real hashes.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		ModifiedAt:   now,
	}
	f.insert(ctx, "users", u)
	return u
}

// AsTestUser converts a stored user to a request identity.
func AsTestUser(u models.User) TestUser {
	return TestUser{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role}
}

// CreateInstitute inserts an institute. coordinator may be nil.
func (f *Fixtures) CreateInstitute(ctx context.Context, name string, coordinator *primitive.ObjectID) models.Institute {
	f.t.Helper()
	now := time.Now().UTC()
	inst := models.Institute{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		City:          "Rajkot",
		CityCI:        text.Fold("Rajkot"),
		CoordinatorID: coordinator,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	f.insert(ctx, "institutes", inst)
	return inst
}

func (f *Fixtures) CreateDepartment(ctx context.Context, name string, instituteID primitive.ObjectID, coordinator *primitive.ObjectID) models.Department {
	f.t.Helper()
	now := time.Now().UTC()
	d := models.Department{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		InstituteID:   instituteID,
		CoordinatorID: coordinator,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	f.insert(ctx, "departments", d)
	return d
}

// CreateEvent inserts an event allowing groups of 2 to 4 and at most
// maxGroups registrations.
func (f *Fixtures) CreateEvent(ctx context.Context, name string, departmentID primitive.ObjectID, coordinator *primitive.ObjectID, maxGroups int) models.Event {
	f.t.Helper()
	now := time.Now().UTC()
	e := models.Event{
		ID:                   primitive.NewObjectID(),
		Name:                 name,
		NameCI:               text.Fold(name),
		DepartmentID:         departmentID,
		Fees:                 100,
		GroupMinParticipants: 2,
		GroupMaxParticipants: 4,
		Location:             "Main Hall",
		MaxGroupsAllowed:     maxGroups,
		CoordinatorID:        coordinator,
		CreatedAt:            now,
		ModifiedAt:           now,
	}
	f.insert(ctx, "events", e)
	return e
}

func (f *Fixtures) CreateGroup(ctx context.Context, name string, eventID primitive.ObjectID, createdBy *primitive.ObjectID) models.Group {
	f.t.Helper()
	now := time.Now().UTC()
	g := models.Group{
		ID:         primitive.NewObjectID(),
		Name:       name,
		EventID:    eventID,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	f.insert(ctx, "groups", g)
	return g
}

func (f *Fixtures) CreateParticipant(ctx context.Context, name string, groupID primitive.ObjectID) models.Participant {
	f.t.Helper()
	now := time.Now().UTC()
	p := models.Participant{
		ID:               primitive.NewObjectID(),
		GroupID:          groupID,
		Name:             name,
		EnrollmentNumber: primitive.NewObjectID().Hex()[:10],
		Email:            "p" + primitive.NewObjectID().Hex()[:6] + "@test.com",
		Phone:            "9999999999",
		CreatedAt:        now,
		ModifiedAt:       now,
	}
	f.insert(ctx, "participants", p)
	return p
}

// Ptr returns a pointer to id, for optional reference fields.
func Ptr(id primitive.ObjectID) *primitive.ObjectID {
	return &id
}
