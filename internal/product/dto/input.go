package dto

import (
	"math"
	"strings"

	"github.com/fekuna/gesstock-service/internal/money"
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateProductInput struct {
	OwnerID    string `json:"-"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price"`
	CategoryID string `json:"category_id"`
}

func (in *CreateProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
}

// Validate reports every failing field at once. Upper bounds follow the
// produtos columns so every storage driver accepts the same values.
func (in CreateProductInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Quantity, validation.Required, validation.Min(1), validation.Max(math.MaxInt32)),
		validation.Field(&in.PriceCents, validation.Required, validation.Min(1), validation.Max(money.MaxCents)),
		validation.Field(&in.CategoryID, validation.Required),
	)
}

type UpdateProductInput struct {
	ID string `json:"id"`
	CreateProductInput
}

func (in *UpdateProductInput) Normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.CreateProductInput.Normalize()
}

func (in UpdateProductInput) Validate() error {
	errs := validation.Errors{}
	if err := in.CreateProductInput.Validate(); err != nil {
		fieldErrs, ok := err.(validation.Errors)
		if !ok {
			return err
		}
		for k, v := range fieldErrs {
			errs[k] = v
		}
	}
	if err := validation.Validate(in.ID, validation.Required); err != nil {
		errs["id"] = err
	}
	return errs.Filter()
}
