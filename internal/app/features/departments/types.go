package departments

import (
	"errors"

	departmentstore "github.com/YatharthSanghavi/wt-project/internal/app/store/departments"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
)

const msgDuplicate = "Department with this name already exists in this institute"

type createInput struct {
	DepartmentName  string `json:"departmentName" validate:"required,max=200" label:"Department name"`
	InstituteID     string `json:"instituteId" validate:"required,objectid" label:"Institute"`
	DepartmentImage string `json:"departmentImage" validate:"omitempty,httpurl" label:"Department image"`
	Description     string `json:"description" validate:"max=5000" label:"Description"`
	CoordinatorID   string `json:"coordinatorId" validate:"omitempty,objectid" label:"Coordinator"`
}

type editInput struct {
	DepartmentName  *string `json:"departmentName" validate:"omitempty,min=1,max=200" label:"Department name"`
	InstituteID     *string `json:"instituteId" validate:"omitempty,objectid" label:"Institute"`
	DepartmentImage *string `json:"departmentImage" validate:"omitempty,httpurl" label:"Department image"`
	Description     *string `json:"description" validate:"omitempty,max=5000" label:"Description"`
	CoordinatorID   *string `json:"coordinatorId" validate:"omitempty,objectid" label:"Coordinator"`
}

func translate(err error) error {
	if errors.Is(err, departmentstore.ErrDuplicateDepartment) {
		return apierr.Wrap(apierr.KindConflict, msgDuplicate, err)
	}
	return err
}
