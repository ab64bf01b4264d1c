package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the `validate` tags of v and returns a readable summary of
// every violation.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", fe.Field(), fe.Param()))
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be %s %s", fe.Field(), fe.Tag(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, ", "))
}
