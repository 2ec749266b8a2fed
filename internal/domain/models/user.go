// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored on User.Role.
const (
	RoleAdmin                 = "admin"
	RoleInstituteCoordinator  = "institute_coordinator"
	RoleDepartmentCoordinator = "department_coordinator"
	RoleEventCoordinator      = "event_coordinator"
	RoleStudent               = "student"
)

// User is owned by the authentication layer; the rest of the app only reads
// its identity and role.
type User struct {
	ID           primitive.ObjectID  `bson:"_id" json:"_id"`
	Name         string              `bson:"name" json:"name"`
	NameCI       string              `bson:"name_ci" json:"-"`
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Phone        string              `bson:"phone" json:"phone"`
	Role         string              `bson:"role" json:"role"`
	InstituteID  *primitive.ObjectID `bson:"instituteId,omitempty" json:"instituteId,omitempty"`
	DepartmentID *primitive.ObjectID `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	ModifiedAt   time.Time           `bson:"modifiedAt" json:"modifiedAt"`
	ModifiedBy   *primitive.ObjectID `bson:"modifiedBy,omitempty" json:"modifiedBy,omitempty"`
}
