package middleware

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "sheetops/internal/errors"
)

// Validator checks decoded request payloads against their struct tags and
// reports failures with JSON field paths.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields by their json tags
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct returns an *apierrors.APIError listing every failed field, or nil
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	details := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		details = append(details, apierrors.ValidationError{
			Field:   field,
			Message: formatValidationError(field, fe),
		})
	}
	return apierrors.NewValidationErrors(details)
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func formatValidationError(field string, fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func hasMediaType(contentType string, allowed []string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(mediaType, a) {
			return true
		}
	}
	return false
}
