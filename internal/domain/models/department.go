// internal/domain/models/department.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department belongs to an Institute.
type Department struct {
	ID            primitive.ObjectID  `bson:"_id" json:"_id"`
	Name          string              `bson:"departmentName" json:"departmentName"`
	NameCI        string              `bson:"name_ci" json:"-"`
	InstituteID   primitive.ObjectID  `bson:"instituteId" json:"instituteId"`
	Image         string              `bson:"departmentImage" json:"departmentImage"`
	Description   string              `bson:"description" json:"description"`
	CoordinatorID *primitive.ObjectID `bson:"coordinatorId,omitempty" json:"coordinatorId,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt    time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy    *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
