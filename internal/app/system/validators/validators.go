// Package validators creates the app's collections and attaches
// server-side JSON-Schema validators to them. The schemas back up the
// request-level checks: a write that slips past a handler still cannot
// store an event with inverted participant bounds.
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates missing collections and sets their validators. Servers
// that do not support collMod validators are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, validator bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if validator == nil {
			return
		}
		if err := setValidator(ctx, db, coll, validator); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("institutes", institutesSchema())
	ensure("departments", departmentsSchema())
	ensure("events", eventsSchema())
	ensure("groups", groupsSchema())
	ensure("participants", participantsSchema())
	ensure("event_winners", winnersSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func schema(required bson.A, props bson.M) bson.M {
	return bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": props,
	}
}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": schema(
			bson.A{"name", "email", "role"},
			bson.M{
				"name":  nonBlank,
				"email": nonBlank,
				"role": bson.M{"enum": bson.A{
					models.RoleAdmin,
					models.RoleInstituteCoordinator,
					models.RoleDepartmentCoordinator,
					models.RoleEventCoordinator,
					models.RoleStudent,
				}},
				"instituteId":  bson.M{"bsonType": bson.A{"objectId", "null"}},
				"departmentId": bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		),
	}
}

func institutesSchema() bson.M {
	return bson.M{
		"$jsonSchema": schema(
			bson.A{"instituteName", "name_ci", "city", "city_ci"},
			bson.M{
				"instituteName": nonBlank,
				"name_ci":       nonBlank,
				"city":          nonBlank,
				"city_ci":       nonBlank,
				"coordinatorId": bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		),
	}
}

func departmentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": schema(
			bson.A{"departmentName", "name_ci", "instituteId"},
			bson.M{
				"departmentName": nonBlank,
				"name_ci":        nonBlank,
				"instituteId":    bson.M{"bsonType": "objectId"},
				"coordinatorId":  bson.M{"bsonType": bson.A{"objectId", "null"}},
			},
		),
	}
}

// eventsSchema also requires groupMinParticipants <= groupMaxParticipants,
// which JSON Schema alone cannot express.
func eventsSchema() bson.M {
	return bson.M{
		"$and": bson.A{
			bson.M{"$jsonSchema": schema(
				bson.A{"eventName", "departmentId", "groupMinParticipants", "groupMaxParticipants", "maxGroupsAllowed"},
				bson.M{
					"eventName":            nonBlank,
					"departmentId":         bson.M{"bsonType": "objectId"},
					"groupMinParticipants": bson.M{"bsonType": "number", "minimum": 1},
					"groupMaxParticipants": bson.M{"bsonType": "number", "minimum": 1},
					"maxGroupsAllowed":     bson.M{"bsonType": "number", "minimum": 1},
					"fees":                 bson.M{"bsonType": "number", "minimum": 0},
					"coordinatorId":        bson.M{"bsonType": bson.A{"objectId", "null"}},
				},
			)},
			bson.M{"$expr": bson.M{"$lte": bson.A{"$groupMinParticipants", "$groupMaxParticipants"}}},
		},
	}
}

func groupsSchema() bson.M {
	return bson.M{
		"$jsonSchema": schema(
			bson.A{"groupName", "eventId"},
			bson.M{
				"groupName":     nonBlank,
				"eventId":       bson.M{"bsonType": "objectId"},
				"isPaymentDone": bson.M{"bsonType": "bool"},
				"isPresent":     bson.M{"bsonType": "bool"},
			},
		),
	}
}

func participantsSchema() bson.M {
	return bson.M{
		"$jsonSchema": schema(
			bson.A{"groupId", "name", "email"},
			bson.M{
				"groupId": bson.M{"bsonType": "objectId"},
				"name":    nonBlank,
				"email":   nonBlank,
			},
		),
	}
}

func winnersSchema() bson.M {
	return bson.M{
		"$jsonSchema": schema(
			bson.A{"eventId", "groupId", "sequence"},
			bson.M{
				"eventId":  bson.M{"bsonType": "objectId"},
				"groupId":  bson.M{"bsonType": "objectId"},
				"sequence": bson.M{"bsonType": "number", "minimum": 1, "maximum": 3},
			},
		),
	}
}
