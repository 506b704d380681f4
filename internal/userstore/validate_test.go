package userstore

import (
	"testing"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidateInput_Valid(t *testing.T) {
	err := ValidateInput(userapi.UserInput{
		FirstName: "Tom",
		LastName:  "Lee",
		Email:     "tom@x.com",
		Avatar:    "https://reqres.in/img/faces/7-image.jpg",
	})
	assert.NoError(t, err)
}

func TestValidateInput_AllProblemsReported(t *testing.T) {
	err := ValidateInput(userapi.UserInput{FirstName: " T ", Email: "tom-at-x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	msgs := multierr.Errors(err)
	require.Len(t, msgs, 4, "sentinel plus three field problems")
	assert.Contains(t, err.Error(), "first name must be at least 2 characters")
	assert.Contains(t, err.Error(), "last name is required")
	assert.Contains(t, err.Error(), "invalid email address")
}

func TestValidateInput_WhitespaceOnlyIsMissing(t *testing.T) {
	err := ValidateInput(userapi.UserInput{FirstName: "   ", LastName: "Lee", Email: "tom@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first name is required")
}

func TestValidateInput_BadAvatar(t *testing.T) {
	err := ValidateInput(userapi.UserInput{FirstName: "Tom", LastName: "Lee", Email: "tom@x.com", Avatar: "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avatar must be a URL")
}
