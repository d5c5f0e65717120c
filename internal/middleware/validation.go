package middleware

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxMessageLength bounds a chat message in bytes.
const DefaultMaxMessageLength = 4000

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateStruct checks validate tags on a request struct and reports the
// first failing field in a client-readable form.
func ValidateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			return fmt.Errorf("the %s field is required", field)
		default:
			return fmt.Errorf("the %s field is invalid", field)
		}
	}
	return err
}

// ValidateMessageContent validates chat message content.
func ValidateMessageContent(content string, maxLength int) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("the message field is required")
	}
	if maxLength > 0 && len(content) > maxLength {
		return fmt.Errorf("the message may not be greater than %d characters", maxLength)
	}
	if !utf8.ValidString(content) {
		return errors.New("message must be valid UTF-8")
	}
	return nil
}
