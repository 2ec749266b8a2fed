// internal/domain/models/institute.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Institute is the root of the owning chain.
// NameCI/CityCI are folded copies used for duplicate detection and search.
type Institute struct {
	ID            primitive.ObjectID  `bson:"_id" json:"_id"`
	Name          string              `bson:"instituteName" json:"instituteName"`
	NameCI        string              `bson:"name_ci" json:"-"`
	City          string              `bson:"city" json:"city"`
	CityCI        string              `bson:"city_ci" json:"-"`
	Image         string              `bson:"instituteImage" json:"instituteImage"`
	CoordinatorID *primitive.ObjectID `bson:"coordinatorId,omitempty" json:"coordinatorId,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt    time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy    *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
