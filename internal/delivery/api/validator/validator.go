// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"strings"

	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates the request validator.
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags of i and reports every failed field at once.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return errors.WithStack(err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}
