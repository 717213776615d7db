package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a gin binding error into a single ErrorDetail
// carrying every violated field, so clients can render all problems at once.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	violations := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, ErrorDetail{
			Code:     ErrorCodeValidationFailed,
			Field:    lowerFirst(fe.Field()),
			Message:  formatFieldError(fe),
			Severity: ErrorSeverityError,
		})
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(violations)
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	field := lowerFirst(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
