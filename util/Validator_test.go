package util

import (
	"errors"
	"testing"

	"book-wishlist/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationMessages(t *testing.T) {
	err := ValidateStruct(dto.CreateAccountRequest{Name: "A", Email: "nope", Password: ""})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"name":     "must be at least 2 characters",
		"email":    "must be a valid email address",
		"password": "is required",
	}, ValidationMessages(err))
}

func TestValidationMessages_UsesJSONNames(t *testing.T) {
	err := ValidateStruct(dto.WishlistAddRequest{})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"bookId": "is required"}, ValidationMessages(err))
}

func TestValidationMessages_NotAValidationError(t *testing.T) {
	assert.Nil(t, ValidationMessages(nil))
	assert.Nil(t, ValidationMessages(errors.New("boom")))
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(dto.LoginRequest{Email: "ada@example.com", Password: "pw"}))
}
