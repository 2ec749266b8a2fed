// internal/app/store/institutes/institutestore.go
package institutestore

import (
	"context"
	"errors"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/app/store/patch"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "institutes"

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateInstitute = errors.New("Institute with this name already exists in this city")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, inst models.Institute) (models.Institute, error) {
	now := time.Now().UTC()
	inst.ID = primitive.NewObjectID()
	inst.NameCI = text.Fold(inst.Name)
	inst.CityCI = text.Fold(inst.City)
	inst.CreatedAt = now
	inst.ModifiedAt = now
	if _, err := s.c.InsertOne(ctx, inst); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Institute{}, ErrDuplicateInstitute
		}
		return models.Institute{}, err
	}
	return inst, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Institute, error) {
	var inst models.Institute
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inst); err != nil {
		return models.Institute{}, err
	}
	return inst, nil
}

// Update applies set and stamps modifiedAt/modifiedBy. Folded name and city
// keys follow their display fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M, by primitive.ObjectID) error {
	if v, ok := set["instituteName"].(string); ok {
		set["name_ci"] = text.Fold(v)
	}
	if v, ok := set["city"].(string); ok {
		set["city_ci"] = text.Fold(v)
	}
	set["modifiedAt"] = time.Now().UTC()
	set["modifiedBy"] = by

	res, err := s.c.UpdateByID(ctx, id, patch.Update(set))
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateInstitute
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an institute by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// NameExistsInCity reports whether another institute in the same city
// already uses the name. excludeID may be NilObjectID on create.
func (s *Store) NameExistsInCity(ctx context.Context, name, city string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"name_ci": text.Fold(name), "city_ci": text.Fold(city)}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Institute, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Institute
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
