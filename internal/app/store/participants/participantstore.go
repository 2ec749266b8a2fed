// internal/app/store/participants/participantstore.go
package participantstore

import (
	"context"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "participants"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Participant, error) {
	var p models.Participant
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Participant{}, err
	}
	return p, nil
}

// Create inserts a participant with a lowercased email.
func (s *Store) Create(ctx context.Context, p models.Participant) (models.Participant, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Email = inputval.NormalizeEmail(p.Email)
	p.CreatedAt = now
	p.ModifiedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Participant{}, err
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M, by primitive.ObjectID) error {
	if v, ok := set["email"].(string); ok {
		set["email"] = inputval.NormalizeEmail(v)
	}
	set["modifiedAt"] = time.Now().UTC()
	set["modifiedBy"] = by
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
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

// DeleteByGroup removes every participant of a group.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"groupId": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByGroup returns a group's participants, leader first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "isGroupLeader", Value: -1}, {Key: "createdAt", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"groupId": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Participant{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"groupId": groupID})
}
