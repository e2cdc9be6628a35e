package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"automarket/internal/apperrors"
)

// validateStruct runs the validator over an input struct and converts tag
// failures into a single validation error naming every offending field.
func validateStruct(v *validator.Validate, input interface{}) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(apperrors.KindValidation, err, "invalid input")
	}
	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, fmt.Sprintf("field %s failed on the %s constraint", e.Field(), e.Tag()))
	}
	return apperrors.Validation("%s", strings.Join(parts, "; "))
}
