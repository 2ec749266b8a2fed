package participants

type createInput struct {
	Name             string `json:"name" validate:"required,max=200" label:"Participant name"`
	EnrollmentNumber string `json:"enrollmentNumber" validate:"required,max=50" label:"Enrollment number"`
	InstituteName    string `json:"instituteName" validate:"required,max=200" label:"Institute name"`
	City             string `json:"city" validate:"required,max=100" label:"City"`
	Phone            string `json:"phone" validate:"required,max=30" label:"Phone"`
	Email            string `json:"email" validate:"required,emailaddr" label:"Email"`
	IsGroupLeader    bool   `json:"isGroupLeader"`
}

type editInput struct {
	Name             *string `json:"name" validate:"omitempty,min=1,max=200" label:"Participant name"`
	EnrollmentNumber *string `json:"enrollmentNumber" validate:"omitempty,min=1,max=50" label:"Enrollment number"`
	InstituteName    *string `json:"instituteName" validate:"omitempty,min=1,max=200" label:"Institute name"`
	City             *string `json:"city" validate:"omitempty,min=1,max=100" label:"City"`
	Phone            *string `json:"phone" validate:"omitempty,min=1,max=30" label:"Phone"`
	Email            *string `json:"email" validate:"omitempty,emailaddr" label:"Email"`
	IsGroupLeader    *bool   `json:"isGroupLeader"`
}
