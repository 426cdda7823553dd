package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	type form struct {
		Name  string `validate:"required,max=10"`
		Email string `validate:"required,email"`
		Score int    `validate:"gte=0,lte=5"`
	}

	err := ValidateStruct(&form{Email: "not-an-email", Score: 9})
	require.Error(t, err)
	require.True(t, IsValidationError(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := map[string]string{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at most 5", fields["score"])
}

func TestValidateStructPasses(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
	}
	assert.NoError(t, ValidateStruct(&form{Name: "ok"}))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("password", "password must be at least 6 characters")
	require.True(t, IsValidationError(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "password", ve.Fields[0].Field)
}
