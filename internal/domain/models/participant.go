// internal/domain/models/participant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant is a member of a Group. Email is stored lowercased.
type Participant struct {
	ID               primitive.ObjectID  `bson:"_id" json:"_id"`
	GroupID          primitive.ObjectID  `bson:"groupId" json:"groupId"`
	Name             string              `bson:"name" json:"name"`
	EnrollmentNumber string              `bson:"enrollmentNumber" json:"enrollmentNumber"`
	InstituteName    string              `bson:"instituteName" json:"instituteName"`
	City             string              `bson:"city" json:"city"`
	Phone            string              `bson:"phone" json:"phone"`
	Email            string              `bson:"email" json:"email"`
	IsGroupLeader    bool                `bson:"isGroupLeader" json:"isGroupLeader"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt       time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy       *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
