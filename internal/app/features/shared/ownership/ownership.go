// Package ownership loads a record together with its owning chain and
// converts it into the shape the access policy evaluates.
//
// A missing target is reported as NotFound. A missing ancestor is left out
// of the chain, which makes every coordinator check against it fail.
package ownership

import (
	"context"
	"errors"
	"net/http"

	"github.com/YatharthSanghavi/wt-project/internal/app/policy/accesspolicy"
	departmentstore "github.com/YatharthSanghavi/wt-project/internal/app/store/departments"
	eventstore "github.com/YatharthSanghavi/wt-project/internal/app/store/events"
	groupstore "github.com/YatharthSanghavi/wt-project/internal/app/store/groups"
	institutestore "github.com/YatharthSanghavi/wt-project/internal/app/store/institutes"
	participantstore "github.com/YatharthSanghavi/wt-project/internal/app/store/participants"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Loader resolves owning chains from the store.
type Loader struct {
	institutes   *institutestore.Store
	departments  *departmentstore.Store
	events       *eventstore.Store
	groups       *groupstore.Store
	participants *participantstore.Store
}

func New(db *mongo.Database) *Loader {
	return &Loader{
		institutes:   institutestore.New(db),
		departments:  departmentstore.New(db),
		events:       eventstore.New(db),
		groups:       groupstore.New(db),
		participants: participantstore.New(db),
	}
}

// ParamID parses the chi URL parameter name. A malformed id cannot match any
// record, so it is reported the same way as a missing one.
func ParamID(r *http.Request, name, entity string) (primitive.ObjectID, error) {
	return ParseID(chi.URLParam(r, name), entity)
}

// ParseID parses a hex id taken from a body or query string.
func ParseID(hex, entity string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apierr.NotFound(entity)
	}
	return id, nil
}

func hexOf(id *primitive.ObjectID) string {
	if id == nil || id.IsZero() {
		return ""
	}
	return id.Hex()
}

// NotFound converts a store miss into the entity's NotFound error.
func NotFound(err error, entity string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apierr.NotFound(entity)
	}
	return err
}

func InstituteRecord(m models.Institute) *accesspolicy.Record {
	return &accesspolicy.Record{Kind: accesspolicy.Institute, ID: m.ID.Hex(), CoordinatorID: hexOf(m.CoordinatorID)}
}

func DepartmentRecord(m models.Department, parent *accesspolicy.Record) *accesspolicy.Record {
	return &accesspolicy.Record{Kind: accesspolicy.Department, ID: m.ID.Hex(), CoordinatorID: hexOf(m.CoordinatorID), Parent: parent}
}

func EventRecord(m models.Event, parent *accesspolicy.Record) *accesspolicy.Record {
	return &accesspolicy.Record{Kind: accesspolicy.Event, ID: m.ID.Hex(), CoordinatorID: hexOf(m.CoordinatorID), Parent: parent}
}

func GroupRecord(m models.Group, parent *accesspolicy.Record) *accesspolicy.Record {
	return &accesspolicy.Record{Kind: accesspolicy.Group, ID: m.ID.Hex(), CreatedBy: hexOf(m.CreatedBy), Parent: parent}
}

func ParticipantRecord(m models.Participant, parent *accesspolicy.Record) *accesspolicy.Record {
	return &accesspolicy.Record{Kind: accesspolicy.Participant, ID: m.ID.Hex(), Parent: parent}
}

// UserRecord identifies a user account for self checks.
func UserRecord(id primitive.ObjectID) *accesspolicy.Record {
	return &accesspolicy.Record{Kind: accesspolicy.User, ID: id.Hex()}
}

func (l *Loader) Institute(ctx context.Context, id primitive.ObjectID) (models.Institute, *accesspolicy.Record, error) {
	m, err := l.institutes.GetByID(ctx, id)
	if err != nil {
		return models.Institute{}, nil, NotFound(err, "Institute")
	}
	return m, InstituteRecord(m), nil
}

// parent loads an ancestor, tolerating its absence.
func parent[T any](ctx context.Context, get func(context.Context, primitive.ObjectID) (T, *accesspolicy.Record, error), id primitive.ObjectID) (*accesspolicy.Record, error) {
	_, rec, err := get(ctx, id)
	if apierr.Is(err, apierr.KindNotFound) {
		return nil, nil
	}
	return rec, err
}

func (l *Loader) Department(ctx context.Context, id primitive.ObjectID) (models.Department, *accesspolicy.Record, error) {
	m, err := l.departments.GetByID(ctx, id)
	if err != nil {
		return models.Department{}, nil, NotFound(err, "Department")
	}
	up, err := parent(ctx, l.Institute, m.InstituteID)
	if err != nil {
		return models.Department{}, nil, err
	}
	return m, DepartmentRecord(m, up), nil
}

func (l *Loader) Event(ctx context.Context, id primitive.ObjectID) (models.Event, *accesspolicy.Record, error) {
	m, err := l.events.GetByID(ctx, id)
	if err != nil {
		return models.Event{}, nil, NotFound(err, "Event")
	}
	up, err := parent(ctx, l.Department, m.DepartmentID)
	if err != nil {
		return models.Event{}, nil, err
	}
	return m, EventRecord(m, up), nil
}

func (l *Loader) Group(ctx context.Context, id primitive.ObjectID) (models.Group, *accesspolicy.Record, error) {
	m, err := l.groups.GetByID(ctx, id)
	if err != nil {
		return models.Group{}, nil, NotFound(err, "Group")
	}
	up, err := parent(ctx, l.Event, m.EventID)
	if err != nil {
		return models.Group{}, nil, err
	}
	return m, GroupRecord(m, up), nil
}

func (l *Loader) Participant(ctx context.Context, id primitive.ObjectID) (models.Participant, *accesspolicy.Record, error) {
	m, err := l.participants.GetByID(ctx, id)
	if err != nil {
		return models.Participant{}, nil, NotFound(err, "Participant")
	}
	up, err := parent(ctx, l.Group, m.GroupID)
	if err != nil {
		return models.Participant{}, nil, err
	}
	return m, ParticipantRecord(m, up), nil
}
