package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
)

// fixtureValidator wraps go-playground/validator and reports failures as
// domain.ErrInvalidFixture with readable field messages.
type fixtureValidator struct {
	v *validator.Validate
}

func newFixtureValidator() *fixtureValidator {
	return &fixtureValidator{v: validator.New()}
}

// Validate checks a single fixture. what names the fixture in the message.
func (fv *fixtureValidator) Validate(what string, i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s: %s", domain.ErrInvalidFixture, what, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uppercase":
		return field + " must be upper case"
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
