// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a team registered for an Event.
// CreatedBy is the registering user; payment and attendance are plain flags.
type Group struct {
	ID            primitive.ObjectID  `bson:"_id" json:"_id"`
	Name          string              `bson:"groupName" json:"groupName"`
	EventID       primitive.ObjectID  `bson:"eventId" json:"eventId"`
	IsPaymentDone bool                `bson:"isPaymentDone" json:"isPaymentDone"`
	IsPresent     bool                `bson:"isPresent" json:"isPresent"`
	CreatedBy     *primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt    time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy    *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
