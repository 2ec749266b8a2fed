// Package deleteguard refuses to delete an Institute, Department or Event
// while dependent records still reference it.
//
// The count and the delete run in one transaction where the deployment
// supports it. That narrows the window without closing it: a child insert
// touches a different document, so snapshot isolation raises no write
// conflict and the child can still be left orphaned. On standalone servers
// the two run back to back.
package deleteguard

import (
	"context"
	"fmt"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Counter counts documents in collection whose field equals id.
type Counter interface {
	CountRefs(ctx context.Context, collection, field string, id primitive.ObjectID) (int64, error)
}

type dependents struct {
	collection string
	field      string
	label      string // as it appears after the count
	plural     string
}

var blocking = map[accesspolicy.Kind]dependents{
	accesspolicy.Institute:  {"departments", "instituteId", "department(s)", "departments"},
	accesspolicy.Department: {"events", "departmentId", "event(s)", "events"},
	accesspolicy.Event:      {"groups", "eventId", "registered group(s)", "groups"},
}

// BlockedError reports the dependents that prevented a delete.
type BlockedError struct {
	Kind   accesspolicy.Kind
	Count  int64
	Label  string
	Plural string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("Cannot delete %s with %d %s. Please remove all %s first.", e.Kind, e.Count, e.Label, e.Plural)
}

// Guard checks dependents before deletes.
type Guard struct {
	counter Counter
	client  *mongo.Client
	metrics *metrics.Metrics
	log     *zap.Logger
}

// New returns a Guard counting against db. m may be nil.
func New(db *mongo.Database, m *metrics.Metrics, log *zap.Logger) *Guard {
	return &Guard{
		counter: mongoCounter{db: db},
		client:  db.Client(),
		metrics: m,
		log:     log,
	}
}

// NewWithCounter builds a Guard without transactions around c.
func NewWithCounter(c Counter, log *zap.Logger) *Guard {
	return &Guard{counter: c, log: log}
}

// Check returns the number of dependents of the record. A positive count is
// returned together with a Conflict error wrapping *BlockedError. Kinds
// without blocking dependents always pass.
func (g *Guard) Check(ctx context.Context, kind accesspolicy.Kind, id primitive.ObjectID) (int64, error) {
	dep, ok := blocking[kind]
	if !ok {
		return 0, nil
	}
	n, err := g.counter.CountRefs(ctx, dep.collection, dep.field, id)
	if err != nil {
		return 0, fmt.Errorf("count %s for %s %s: %w", dep.collection, kind, id.Hex(), err)
	}
	if n > 0 {
		g.metrics.GuardBlocked(string(kind))
		be := &BlockedError{Kind: kind, Count: n, Label: dep.label, Plural: dep.plural}
		return n, apierr.Wrap(apierr.KindConflict, be.Error(), be)
	}
	return 0, nil
}

// Delete runs Check and, when it passes, del. It returns del's count of
// removed documents.
func (g *Guard) Delete(ctx context.Context, kind accesspolicy.Kind, id primitive.ObjectID, del func(ctx context.Context) (int64, error)) (int64, error) {
	var deleted int64
	err := txn.Run(ctx, g.client, g.log, func(ctx context.Context) error {
		if _, err := g.Check(ctx, kind, id); err != nil {
			return err
		}
		n, err := del(ctx)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

type mongoCounter struct {
	db *mongo.Database
}

func (c mongoCounter) CountRefs(ctx context.Context, collection, field string, id primitive.ObjectID) (int64, error) {
	return c.db.Collection(collection).CountDocuments(ctx, bson.M{field: id})
}
