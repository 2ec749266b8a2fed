// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is hosted by a Department and accepts group registrations.
//
// NOTE:
//   - GroupMinParticipants <= GroupMaxParticipants, both >= 1.
//   - MaxGroupsAllowed >= 1 caps the number of registered groups.
type Event struct {
	ID                      primitive.ObjectID  `bson:"_id" json:"_id"`
	Name                    string              `bson:"eventName" json:"eventName"`
	NameCI                  string              `bson:"name_ci" json:"-"`
	Tagline                 string              `bson:"tagline" json:"tagline"`
	Description             string              `bson:"description" json:"description"`
	DepartmentID            primitive.ObjectID  `bson:"departmentId" json:"departmentId"`
	Image                   string              `bson:"eventImage" json:"eventImage"`
	Fees                    float64             `bson:"fees" json:"fees"`
	Prizes                  string              `bson:"prizes" json:"prizes"`
	GroupMinParticipants    int                 `bson:"groupMinParticipants" json:"groupMinParticipants"`
	GroupMaxParticipants    int                 `bson:"groupMaxParticipants" json:"groupMaxParticipants"`
	Location                string              `bson:"eventLocation" json:"eventLocation"`
	MaxGroupsAllowed        int                 `bson:"maxGroupsAllowed" json:"maxGroupsAllowed"`
	CoordinatorID           *primitive.ObjectID `bson:"coordinatorId,omitempty" json:"coordinatorId,omitempty"`
	StudentCoordinatorName  string              `bson:"studentCoordinatorName" json:"studentCoordinatorName"`
	StudentCoordinatorPhone string              `bson:"studentCoordinatorPhone" json:"studentCoordinatorPhone"`
	StudentCoordinatorEmail string              `bson:"studentCoordinatorEmail" json:"studentCoordinatorEmail"`
	CreatedAt               time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt              time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy              *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
