// Package populate provides the read-side queries that join a record with
// the summaries of the records it references (coordinator, institute,
// department), the shape the JSON API returns.
package populate

import (
	"context"
	"regexp"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Contact is the public summary of a coordinator.
type Contact struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Phone string             `bson:"phone" json:"phone"`
}

type InstituteRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"instituteName" json:"instituteName"`
	City string             `bson:"city" json:"city"`
}

// DepartmentRef carries the institute summary when the query nests it.
type DepartmentRef struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"departmentName" json:"departmentName"`
	InstituteID primitive.ObjectID `bson:"instituteId" json:"-"`
	Institute   *InstituteRef      `bson:"institute,omitempty" json:"instituteId,omitempty"`
}

// The view types shadow the embedded reference ids in JSON with the joined
// summaries; an unresolved reference is omitted.

type InstituteView struct {
	models.Institute `bson:",inline"`
	Coordinator      *Contact `bson:"coordinator,omitempty" json:"coordinatorId,omitempty"`
}

type DepartmentView struct {
	models.Department `bson:",inline"`
	Institute         *InstituteRef `bson:"institute,omitempty" json:"instituteId,omitempty"`
	Coordinator       *Contact      `bson:"coordinator,omitempty" json:"coordinatorId,omitempty"`
}

type EventView struct {
	models.Event `bson:",inline"`
	Department   *DepartmentRef `bson:"department,omitempty" json:"departmentId,omitempty"`
	Coordinator  *Contact       `bson:"coordinator,omitempty" json:"coordinatorId,omitempty"`
}

type UserView struct {
	models.User `bson:",inline"`
	Institute   *InstituteRef  `bson:"institute,omitempty" json:"instituteId,omitempty"`
	Department  *DepartmentRef `bson:"department,omitempty" json:"departmentId,omitempty"`
}

var (
	contactFields    = bson.M{"name": 1, "email": 1, "phone": 1}
	instituteFields  = bson.M{"instituteName": 1, "city": 1}
	departmentFields = bson.M{"departmentName": 1, "instituteId": 1}
)

// NewestFirst is the default list order.
var NewestFirst = bson.D{{Key: "createdAt", Value: -1}}

// ByName sorts ascending on a display-name field.
func ByName(field string) bson.D { return bson.D{{Key: field, Value: 1}} }

// lookupOne joins the single document of from whose _id equals local and
// stores its projection under as. inner stages run on the joined document.
func lookupOne(from, local, as string, project bson.M, inner ...bson.D) []bson.D {
	sub := bson.A{
		bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$ref"}}}},
		bson.M{"$project": project},
	}
	for _, st := range inner {
		sub = append(sub, st)
	}
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":     from,
			"let":      bson.M{"ref": "$" + local},
			"pipeline": sub,
			"as":       as,
		}}},
		{{Key: "$addFields", Value: bson.M{as: bson.M{"$arrayElemAt": bson.A{"$" + as, 0}}}}},
	}
}

func pipeline(match bson.M, sort bson.D, joins ...[]bson.D) mongo.Pipeline {
	if sort == nil {
		sort = NewestFirst
	}
	p := mongo.Pipeline{{{Key: "$match", Value: match}}, {{Key: "$sort", Value: sort}}}
	for _, j := range joins {
		p = append(p, j...)
	}
	return p
}

func run[T any](ctx context.Context, c *mongo.Collection, p mongo.Pipeline) ([]T, error) {
	cur, err := c.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func one[T any](ctx context.Context, c *mongo.Collection, p mongo.Pipeline) (T, error) {
	var zero T
	items, err := run[T](ctx, c, p)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, mongo.ErrNoDocuments
	}
	return items[0], nil
}

func instituteJoins() [][]bson.D {
	return [][]bson.D{lookupOne("users", "coordinatorId", "coordinator", contactFields)}
}

func departmentJoins() [][]bson.D {
	return [][]bson.D{
		lookupOne("institutes", "instituteId", "institute", instituteFields),
		lookupOne("users", "coordinatorId", "coordinator", contactFields),
	}
}

func eventJoins() [][]bson.D {
	return [][]bson.D{
		lookupOne("departments", "departmentId", "department", departmentFields,
			lookupOne("institutes", "instituteId", "institute", instituteFields)...),
		lookupOne("users", "coordinatorId", "coordinator", contactFields),
	}
}

func userJoins() [][]bson.D {
	return [][]bson.D{
		lookupOne("institutes", "instituteId", "institute", instituteFields),
		lookupOne("departments", "departmentId", "department", departmentFields),
	}
}

func Institutes(ctx context.Context, db *mongo.Database, match bson.M) ([]InstituteView, error) {
	return run[InstituteView](ctx, db.Collection("institutes"), pipeline(match, nil, instituteJoins()...))
}

func Institute(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (InstituteView, error) {
	return one[InstituteView](ctx, db.Collection("institutes"), pipeline(bson.M{"_id": id}, nil, instituteJoins()...))
}

// Departments lists matching departments; a nil sort means newest first.
func Departments(ctx context.Context, db *mongo.Database, match bson.M, sort bson.D) ([]DepartmentView, error) {
	return run[DepartmentView](ctx, db.Collection("departments"), pipeline(match, sort, departmentJoins()...))
}

func Department(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (DepartmentView, error) {
	return one[DepartmentView](ctx, db.Collection("departments"), pipeline(bson.M{"_id": id}, nil, departmentJoins()...))
}

func Events(ctx context.Context, db *mongo.Database, match bson.M, sort bson.D) ([]EventView, error) {
	return run[EventView](ctx, db.Collection("events"), pipeline(match, sort, eventJoins()...))
}

func Event(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (EventView, error) {
	return one[EventView](ctx, db.Collection("events"), pipeline(bson.M{"_id": id}, nil, eventJoins()...))
}

func Users(ctx context.Context, db *mongo.Database, match bson.M) ([]UserView, error) {
	return run[UserView](ctx, db.Collection("users"), pipeline(match, nil, userJoins()...))
}

func User(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (UserView, error) {
	return one[UserView](ctx, db.Collection("users"), pipeline(bson.M{"_id": id}, nil, userJoins()...))
}

/* -------------------------------------------------------------------------- */
/* Filters                                                                    */
/* -------------------------------------------------------------------------- */

// contains matches s anywhere in the field, taking the input literally.
func contains(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// EventFilter narrows the event list. Zero fields are ignored.
type EventFilter struct {
	DepartmentID primitive.ObjectID
	Search       string
	Location     string
}

func (f EventFilter) Match() bson.M {
	m := bson.M{}
	if !f.DepartmentID.IsZero() {
		m["departmentId"] = f.DepartmentID
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		m["name_ci"] = contains(text.Fold(q))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		m["eventLocation"] = contains(loc)
	}
	return m
}

// UserFilter narrows the admin user list.
type UserFilter struct {
	Role   string
	Search string
}

func (f UserFilter) Match() bson.M {
	m := bson.M{}
	if r := strings.TrimSpace(f.Role); r != "" {
		m["role"] = strings.ToLower(r)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		m["$or"] = bson.A{
			bson.M{"name_ci": contains(text.Fold(q))},
			bson.M{"email": contains(strings.ToLower(q))},
		}
	}
	return m
}
