package users

// editInput is a profile PATCH after the caller's field allowlist has been
// applied. Absent fields are left untouched; an empty institute or
// department id clears the link.
type editInput struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	Role         *string `json:"role" validate:"omitempty,role"`
	InstituteID  *string `json:"instituteId" validate:"omitempty,objectid"`
	DepartmentID *string `json:"departmentId" validate:"omitempty,objectid"`
}
