// internal/domain/models/winner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventWinner ranks a Group within an Event. Exactly one document per
// (eventId, sequence); Sequence is 1, 2 or 3.
type EventWinner struct {
	ID         primitive.ObjectID  `bson:"_id" json:"_id"`
	EventID    primitive.ObjectID  `bson:"eventId" json:"eventId"`
	GroupID    primitive.ObjectID  `bson:"groupId" json:"groupId"`
	Sequence   int                 `bson:"sequence" json:"sequence"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
