package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns the validator shared by the services.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateInput maps validation failures onto ErrInvalidInput, naming the
// first offending field. A nil validator accepts everything.
func validateInput(v *validator.Validate, in any) error {
	if v == nil {
		return nil
	}
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, verrs[0].Field())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
