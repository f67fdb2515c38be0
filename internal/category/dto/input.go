package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCategoryInput struct {
	OwnerID string `json:"-"`
	Name    string `json:"name"`
}

func (in *CreateCategoryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

func (in CreateCategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
	)
}

type UpdateCategoryInput struct {
	ID      string `json:"id"`
	OwnerID string `json:"-"`
	Name    string `json:"name"`
}

func (in *UpdateCategoryInput) Normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
}

func (in UpdateCategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ID, validation.Required),
		validation.Field(&in.Name, validation.Required),
	)
}
