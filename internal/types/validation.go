package types

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is an input problem whose Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// messenger is implemented by request types that carry user-facing messages,
// keyed "<StructField>.<tag>".
type messenger interface {
	validationMessages() map[string]string
}

// Validate checks s against its validate tags. The first failure becomes a
// *ValidationError; "required" failures are reported before any other.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	for _, e := range verrs {
		if e.Tag() == "required" {
			fe = e
			break
		}
	}

	if m, ok := s.(messenger); ok {
		if msg, ok := m.validationMessages()[fe.StructField()+"."+fe.Tag()]; ok {
			return NewValidationError(fe.Field(), msg)
		}
	}
	return NewValidationError(fe.Field(), defaultMessage(fe))
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("Invalid %s (must be at least %s)", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("Invalid %s (must be at most %s)", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("Invalid %s (expected YYYY-MM-DD)", fe.Field())
	}
	return fmt.Sprintf("Invalid %s", fe.Field())
}
