package events

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/htmlsanitize"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/inputval"
)

type createInput struct {
	EventName               string   `json:"eventName" validate:"required,max=200" label:"Event name"`
	Tagline                 string   `json:"tagline" validate:"max=300" label:"Tagline"`
	Description             string   `json:"description" validate:"max=10000" label:"Description"`
	DepartmentID            string   `json:"departmentId" validate:"required,objectid" label:"Department"`
	EventImage              string   `json:"eventImage" validate:"omitempty,httpurl" label:"Event image"`
	Fees                    float64  `json:"fees"`
	Prizes                  string   `json:"prizes" validate:"max=2000" label:"Prizes"`
	GroupMinParticipants    *int     `json:"groupMinParticipants" validate:"required" label:"Minimum participants"`
	GroupMaxParticipants    *int     `json:"groupMaxParticipants" validate:"required" label:"Maximum participants"`
	EventLocation           string   `json:"eventLocation" validate:"max=300" label:"Event location"`
	MaxGroupsAllowed        *int     `json:"maxGroupsAllowed" validate:"required" label:"Maximum groups allowed"`
	CoordinatorID           string   `json:"coordinatorId" validate:"omitempty,objectid" label:"Coordinator"`
	StudentCoordinatorName  string   `json:"studentCoordinatorName" validate:"max=200" label:"Student coordinator name"`
	StudentCoordinatorPhone string   `json:"studentCoordinatorPhone" validate:"max=30" label:"Student coordinator phone"`
	StudentCoordinatorEmail string   `json:"studentCoordinatorEmail" validate:"omitempty,emailaddr" label:"Student coordinator email"`
}

func (in *createInput) sanitize() {
	in.EventName = htmlsanitize.PlainText(in.EventName)
	in.Tagline = htmlsanitize.PlainText(in.Tagline)
	in.Description = htmlsanitize.Sanitize(in.Description)
	in.Prizes = htmlsanitize.Sanitize(in.Prizes)
	in.EventLocation = htmlsanitize.PlainText(in.EventLocation)
	in.StudentCoordinatorName = htmlsanitize.PlainText(in.StudentCoordinatorName)
}

func (in createInput) bounds() inputval.EventBounds {
	return inputval.EventBounds{
		GroupMin:  *in.GroupMinParticipants,
		GroupMax:  *in.GroupMaxParticipants,
		MaxGroups: *in.MaxGroupsAllowed,
		Fees:      in.Fees,
	}
}

// editInput leaves absent fields untouched. An explicit zero in a bound
// field is validated like any other value.
type editInput struct {
	EventName               *string  `json:"eventName" validate:"omitempty,min=1,max=200" label:"Event name"`
	Tagline                 *string  `json:"tagline" validate:"omitempty,max=300" label:"Tagline"`
	Description             *string  `json:"description" validate:"omitempty,max=10000" label:"Description"`
	EventImage              *string  `json:"eventImage" validate:"omitempty,httpurl" label:"Event image"`
	Fees                    *float64 `json:"fees"`
	Prizes                  *string  `json:"prizes" validate:"omitempty,max=2000" label:"Prizes"`
	GroupMinParticipants    *int     `json:"groupMinParticipants"`
	GroupMaxParticipants    *int     `json:"groupMaxParticipants"`
	EventLocation           *string  `json:"eventLocation" validate:"omitempty,max=300" label:"Event location"`
	MaxGroupsAllowed        *int     `json:"maxGroupsAllowed"`
	CoordinatorID           *string  `json:"coordinatorId" validate:"omitempty,objectid" label:"Coordinator"`
	StudentCoordinatorName  *string  `json:"studentCoordinatorName" validate:"omitempty,max=200" label:"Student coordinator name"`
	StudentCoordinatorPhone *string  `json:"studentCoordinatorPhone" validate:"omitempty,max=30" label:"Student coordinator phone"`
	StudentCoordinatorEmail *string  `json:"studentCoordinatorEmail" validate:"omitempty,emailaddr" label:"Student coordinator email"`
}

func (in editInput) patch() inputval.EventPatch {
	return inputval.EventPatch{
		GroupMin:  in.GroupMinParticipants,
		GroupMax:  in.GroupMaxParticipants,
		MaxGroups: in.MaxGroupsAllowed,
		Fees:      in.Fees,
	}
}

// detail is the single-event response with live registration counts.
type detail struct {
	populate.EventView
	RegisteredGroups int64 `json:"registeredGroups"`
	SpotsRemaining   int64 `json:"spotsRemaining"`
}

type summary struct {
	EventName         string  `json:"eventName"`
	TotalGroups       int64   `json:"totalGroups"`
	TotalParticipants int64   `json:"totalParticipants"`
	PaidGroups        int64   `json:"paidGroups"`
	PresentGroups     int64   `json:"presentGroups"`
	MaxGroupsAllowed  int     `json:"maxGroupsAllowed"`
	SpotsRemaining    int64   `json:"spotsRemaining"`
	Fees              float64 `json:"fees"`
	Prizes            string  `json:"prizes"`
}

type winnerInput struct {
	GroupID  string `json:"groupId" validate:"required,objectid" label:"Group"`
	Sequence int    `json:"sequence" validate:"required,min=1,max=3" label:"Sequence"`
}
