package authapi

import "github.com/YatharthSanghavi/wt-project/internal/app/store/queries/populate"

type registerInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,emailaddr"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type session struct {
	Token string             `json:"token"`
	User  populate.UserView `json:"user"`
}
