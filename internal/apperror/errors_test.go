package apperror

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

func TestFromFieldMapSortsFields(t *testing.T) {
	err := FromFieldMap(map[string]error{
		"quantity": errors.New("must be no less than 1"),
		"name":     errors.New("cannot be blank"),
	})

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Fields[0].Field)
	assert.Equal(t, "quantity", ve.Fields[1].Field)
	assert.True(t, ve.HasField("quantity"))
	assert.False(t, ve.HasField("price_cents"))
	assert.Equal(t, "validation failed: name: cannot be blank; quantity: must be no less than 1", err.Error())
}

func TestFromFieldMapEmpty(t *testing.T) {
	assert.NoError(t, FromFieldMap(nil))
}

func TestStorageErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("save products: %w", &StorageWriteError{Key: "user_1_produtos", Err: cause})

	assert.True(t, IsStorageWriteError(err))
	assert.False(t, IsStorageReadError(err))
	assert.ErrorIs(t, err, cause)

	read := &StorageReadError{Key: "user_1_categorias", Err: cause}
	assert.True(t, IsStorageReadError(read))
	assert.Contains(t, read.Error(), "user_1_categorias")
}

func TestFromValidation(t *testing.T) {
	assert.NoError(t, FromValidation(nil))

	plain := errors.New("internal")
	assert.Equal(t, plain, FromValidation(plain))

	err := FromValidation(validation.Errors{"name": errors.New("cannot be blank")})
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "validation failed: name: cannot be blank", err.Error())
}
