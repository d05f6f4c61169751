package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks config structs and reports failures by their config key
// ("api.sign_key") instead of the Go field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields by their mapstructure tag
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, describeFieldError(e))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

// describeFieldError renders one failure as "key: reason"
func describeFieldError(e validator.FieldError) string {
	key := configKey(e.Namespace())

	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s: is required", key)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s], got %q", key, e.Param(), fmt.Sprint(e.Value()))
	case "min":
		return fmt.Sprintf("%s: must be at least %s", key, e.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", key, e.Param())
	case "url":
		return fmt.Sprintf("%s: must be a valid URL", key)
	default:
		return fmt.Sprintf("%s: failed %q check", key, e.Tag())
	}
}

// configKey strips the root struct name: "Config.api.sign_key" -> "api.sign_key"
func configKey(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
