// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "groups"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
	g.ModifiedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Update applies set and stamps modifiedAt/modifiedBy.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M, by primitive.ObjectID) error {
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

// Delete removes a group by ID. Participants are removed separately by the
// caller within the same unit of work.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns groups matching filter, newest first.
func (s *Store) Find(ctx context.Context, filter bson.M) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountByEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"eventId": eventID})
}

// EventStats summarises the registrations of one event.
type EventStats struct {
	Groups       int64 `bson:"groups" json:"totalGroups"`
	Participants int64 `bson:"participants" json:"totalParticipants"`
	Paid         int64 `bson:"paid" json:"paidGroups"`
	Present      int64 `bson:"present" json:"presentGroups"`
}

// StatsForEvent counts groups, paid and present groups and their
// participants in a single aggregation.
func (s *Store) StatsForEvent(ctx context.Context, eventID primitive.ObjectID) (EventStats, error) {
	pipe := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"eventId": eventID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "participants",
			"localField":   "_id",
			"foreignField": "groupId",
			"as":           "members",
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"groups":       bson.M{"$sum": 1},
			"participants": bson.M{"$sum": bson.M{"$size": "$members"}},
			"paid":         bson.M{"$sum": bson.M{"$cond": bson.A{"$isPaymentDone", 1, 0}}},
			"present":      bson.M{"$sum": bson.M{"$cond": bson.A{"$isPresent", 1, 0}}},
		}}},
	}
	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return EventStats{}, err
	}
	defer cur.Close(ctx)

	var st EventStats
	if cur.Next(ctx) {
		if err := cur.Decode(&st); err != nil {
			return EventStats{}, err
		}
	}
	return st, cur.Err()
}
