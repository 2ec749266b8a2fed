package deleteguard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/deleteguard"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeCounter returns canned counts keyed by collection.
type fakeCounter struct {
	counts map[string]int64
	err    error
	calls  []string
}

func (f *fakeCounter) CountRefs(_ context.Context, collection, field string, _ primitive.ObjectID) (int64, error) {
	f.calls = append(f.calls, collection+"."+field)
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[collection], nil
}

func TestCheck_Messages(t *testing.T) {
	tests := []struct {
		kind    accesspolicy.Kind
		coll    string
		count   int64
		message string
	}{
		{accesspolicy.Institute, "departments", 1, "Cannot delete institute with 1 department(s). Please remove all departments first."},
		{accesspolicy.Department, "events", 2, "Cannot delete department with 2 event(s). Please remove all events first."},
		{accesspolicy.Event, "groups", 3, "Cannot delete event with 3 registered group(s). Please remove all groups first."},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			g := deleteguard.NewWithCounter(&fakeCounter{counts: map[string]int64{tt.coll: tt.count}}, zap.NewNop())

			n, err := g.Check(context.Background(), tt.kind, primitive.NewObjectID())
			require.Error(t, err)
			assert.Equal(t, tt.count, n)
			assert.True(t, apierr.Is(err, apierr.KindConflict))

			var be *deleteguard.BlockedError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.message, be.Error())

			var ae *apierr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.message, ae.Message)
		})
	}
}

func TestCheck_NoDependents(t *testing.T) {
	g := deleteguard.NewWithCounter(&fakeCounter{counts: map[string]int64{}}, zap.NewNop())
	n, err := g.Check(context.Background(), accesspolicy.Event, primitive.NewObjectID())
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestCheck_KindsWithoutDependents(t *testing.T) {
	fc := &fakeCounter{counts: map[string]int64{"participants": 5}}
	g := deleteguard.NewWithCounter(fc, zap.NewNop())

	for _, k := range []accesspolicy.Kind{accesspolicy.Group, accesspolicy.Participant, accesspolicy.User} {
		_, err := g.Check(context.Background(), k, primitive.NewObjectID())
		assert.NoError(t, err)
	}
	assert.Empty(t, fc.calls)
}

func TestDelete_BlockedDoesNotDelete(t *testing.T) {
	g := deleteguard.NewWithCounter(&fakeCounter{counts: map[string]int64{"departments": 1}}, zap.NewNop())

	called := false
	_, err := g.Delete(context.Background(), accesspolicy.Institute, primitive.NewObjectID(), func(context.Context) (int64, error) {
		called = true
		return 1, nil
	})
	require.Error(t, err)
	assert.False(t, called, "delete must not run when dependents exist")
}

func TestDelete_SucceedsAfterChildrenRemoved(t *testing.T) {
	fc := &fakeCounter{counts: map[string]int64{"groups": 3}}
	g := deleteguard.NewWithCounter(fc, zap.NewNop())
	id := primitive.NewObjectID()
	del := func(context.Context) (int64, error) { return 1, nil }

	_, err := g.Delete(context.Background(), accesspolicy.Event, id, del)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 registered group(s)")

	fc.counts["groups"] = 0
	n, err := g.Delete(context.Background(), accesspolicy.Event, id, del)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDelete_CountErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	g := deleteguard.NewWithCounter(&fakeCounter{err: boom}, zap.NewNop())

	_, err := g.Delete(context.Background(), accesspolicy.Department, primitive.NewObjectID(), func(context.Context) (int64, error) {
		t.Fatal("delete should not run")
		return 0, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, apierr.KindInternal, apierr.KindOf(err))
}
