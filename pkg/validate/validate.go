package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/frognance/frognance/pkg/response"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request DTO against its validate tags and returns
// field-level errors suitable for a 400 response. A nil slice means the
// value is valid.
func Struct(s interface{}) []response.FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
