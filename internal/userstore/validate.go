package userstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

var fieldLabels = map[string]string{
	"FirstName": "first name",
	"LastName":  "last name",
	"Email":     "email",
	"Avatar":    "avatar",
}

// ValidateInput checks a user form before it is sent: both names are
// required and at least two characters long, the email is required and
// well formed, and the avatar, when present, is a URL. All field problems
// are reported together, combined with ErrInvalidInput.
func ValidateInput(in userapi.UserInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return multierr.Append(ErrInvalidInput, err)
	}

	combined := ErrInvalidInput
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, fieldMessage(fe))
	}
	return combined
}

func fieldMessage(fe validator.FieldError) error {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", label)
	case "min":
		return fmt.Errorf("%s must be at least %s characters", label, fe.Param())
	case "email":
		return errors.New("invalid email address")
	case "url":
		return fmt.Errorf("%s must be a URL", label)
	default:
		return fmt.Errorf("%s is invalid (%s)", label, fe.Tag())
	}
}
