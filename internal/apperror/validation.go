package apperror

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FromValidation converts ozzo-validation field errors into a ValidationError.
// Other errors pass through unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		return FromFieldMap(errs)
	}
	return err
}
