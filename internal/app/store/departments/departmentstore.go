// internal/app/store/departments/departmentstore.go
package departmentstore

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
)

const Collection = "departments"

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateDepartment = errors.New("Department with this name already exists in this institute")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, d models.Department) (models.Department, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.NameCI = text.Fold(d.Name)
	d.CreatedAt = now
	d.ModifiedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Department{}, ErrDuplicateDepartment
		}
		return models.Department{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Department, error) {
	var d models.Department
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Department{}, err
	}
	return d, nil
}

// Update applies set and stamps modifiedAt/modifiedBy.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M, by primitive.ObjectID) error {
	if v, ok := set["departmentName"].(string); ok {
		set["name_ci"] = text.Fold(v)
	}
	set["modifiedAt"] = time.Now().UTC()
	set["modifiedBy"] = by

	res, err := s.c.UpdateByID(ctx, id, patch.Update(set))
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateDepartment
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// NameExistsInInstitute reports whether another department of the institute
// already uses the name.
func (s *Store) NameExistsInInstitute(ctx context.Context, name string, instituteID, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"name_ci": text.Fold(name), "instituteId": instituteID}
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

// CountByInstitute returns the number of departments attached to an institute.
func (s *Store) CountByInstitute(ctx context.Context, instituteID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"instituteId": instituteID})
}
