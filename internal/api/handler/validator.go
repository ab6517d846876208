package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// passwordSpecials is the set of special characters the password policy accepts.
const passwordSpecials = "@$!%*?&"

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	// Go regexp has no lookahead, so the password policy is checked imperatively.
	_ = v.RegisterValidation("password", passwordRule)
	_ = v.RegisterValidation("personname", personNameRule)
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Field errors are flattened
// into a single comma-joined message, one message per field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			seen := make(map[string]struct{}, len(ve))
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				if _, dup := seen[fe.Field()]; dup {
					continue
				}
				seen[fe.Field()] = struct{}{}
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " cannot be empty"
	case "email":
		return "invalid email format"
	case "password":
		return "Password must be at least 8 characters and contain letters, numbers, and special characters"
	case "datetime":
		return field + " must be a valid date in format " + fe.Param()
	case "personname":
		return field + " must only contain letters and spaces"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func personNameRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func passwordRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var letter, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return letter && digit && special
}
