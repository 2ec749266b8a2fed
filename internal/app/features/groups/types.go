package groups

import (
	"github.com/YatharthSanghavi/wt-project/internal/domain/models"
)

type createInput struct {
	GroupName string `json:"groupName" validate:"required,max=200" label:"Group name"`
	EventID   string `json:"eventId" validate:"required,objectid" label:"Event"`
}

// editInput is validated after the body has been narrowed to the fields
// the caller may change.
type editInput struct {
	GroupName     *string `json:"groupName" validate:"omitempty,min=1,max=200" label:"Group name"`
	IsPaymentDone *bool   `json:"isPaymentDone"`
	IsPresent     *bool   `json:"isPresent"`
}

type groupDetail struct {
	models.Group
	Participants []models.Participant `json:"participants"`
}
