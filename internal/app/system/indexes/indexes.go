// Package indexes reconciles the MongoDB indexes the app relies on.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Every collection set is idempotent and
errors are aggregated so one bad collection does not hide the others.

The unique indexes are the storage-side half of the duplicate-name rules:
institute names per city, department names per institute, one account per
email and one winner per (event, position).
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, set := range collectionSets {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func idx(name string, unique bool, keys ...string) mongo.IndexModel {
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		dir := 1
		if strings.HasPrefix(k, "-") {
			k, dir = k[1:], -1
		}
		d = append(d, bson.E{Key: k, Value: dir})
	}
	opts := options.Index().SetName(name)
	if unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: d, Options: opts}
}

var collectionSets = []indexSet{
	{"users", []mongo.IndexModel{
		idx("uniq_users_email", true, "email"),
		idx("idx_users_role_createdat", false, "role", "-createdAt"),
		idx("idx_users_nameci", false, "name_ci"),
	}},
	{"institutes", []mongo.IndexModel{
		idx("uniq_institutes_cityci_nameci", true, "city_ci", "name_ci"),
		idx("idx_institutes_coordinator", false, "coordinatorId"),
	}},
	{"departments", []mongo.IndexModel{
		idx("uniq_departments_institute_nameci", true, "instituteId", "name_ci"),
		idx("idx_departments_coordinator", false, "coordinatorId"),
	}},
	{"events", []mongo.IndexModel{
		idx("idx_events_department_createdat", false, "departmentId", "-createdAt"),
		idx("idx_events_coordinator", false, "coordinatorId"),
		idx("idx_events_nameci", false, "name_ci"),
	}},
	{"groups", []mongo.IndexModel{
		idx("idx_groups_event_createdat", false, "eventId", "-createdAt"),
		idx("idx_groups_createdby", false, "createdBy"),
	}},
	{"participants", []mongo.IndexModel{
		idx("idx_participants_group", false, "groupId"),
	}},
	{"event_winners", []mongo.IndexModel{
		idx("uniq_winners_event_sequence", true, "eventId", "sequence"),
		idx("idx_winners_group", false, "groupId"),
	}},
	{"audit_events", []mongo.IndexModel{
		idx("idx_audit_timestamp", false, "-timestamp"),
		idx("idx_audit_user_timestamp", false, "user_id", "-timestamp"),
		idx("idx_audit_category_type_timestamp", false, "category", "event_type", "-timestamp"),
	}},
}

/* -------------------------------------------------------------------------- */
/* Reconciliation                                                             */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isTrue(b *bool) bool { return b != nil && *b }

// isDuplicateKeyErr matches E11000 across server vendors.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

// ensureIndexSet makes each model exist with its name and uniqueness. An
// index on the same keys under another name, or with different uniqueness,
// is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// A missing collection lists as an error on some servers; creating
		// the first index creates the collection.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		unique := isTrue(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique))

		if ex, ok := existing[sig]; ok {
			if ex.Name == name && isTrue(ex.Unique) == unique {
				log.Debug("index up to date")
				continue
			}
			log.Info("replacing index", zap.String("existing", ex.Name))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop %s failed: %v", coll.Name(), name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && isDuplicateKeyErr(err) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index, duplicates present on %s", coll.Name(), name, sig))
				continue
			}
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		log.Info("index ensured", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
