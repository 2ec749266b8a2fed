package institutes

type createInput struct {
	InstituteName  string `json:"instituteName" validate:"required,max=200" label:"Institute name"`
	City           string `json:"city" validate:"required,max=100" label:"City"`
	InstituteImage string `json:"instituteImage" validate:"omitempty,httpurl" label:"Institute image"`
	CoordinatorID  string `json:"coordinatorId" validate:"omitempty,objectid" label:"Coordinator"`
}

// editInput leaves absent fields untouched.
type editInput struct {
	InstituteName  *string `json:"instituteName" validate:"omitempty,min=1,max=200" label:"Institute name"`
	City           *string `json:"city" validate:"omitempty,min=1,max=100" label:"City"`
	InstituteImage *string `json:"instituteImage" validate:"omitempty,httpurl" label:"Institute image"`
	CoordinatorID  *string `json:"coordinatorId" validate:"omitempty,objectid" label:"Coordinator"`
}
