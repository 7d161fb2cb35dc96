package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate

	dimensionPattern = regexp.MustCompile(`^\d+x\d+$`)
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("dimension", validateDimension); err != nil {
		panic(fmt.Sprintf("failed to register dimension validator: %v", err))
	}
}

// validateDimension checks the "<width>x<height>" shape
func validateDimension(fl validator.FieldLevel) bool {
	return dimensionPattern.MatchString(fl.Field().String())
}

// Struct validates s and flattens the first field error into a readable message
func Struct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return fmt.Errorf("invalid %s: failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value())
	}
	return err
}
