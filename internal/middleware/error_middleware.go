// Package middleware provides HTTP middleware components
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

// HandleAPIError translates service errors into the standard error envelope.
// Controllers call it for any error coming back from the service layer so the
// taxonomy stays consistent across every endpoint.
func HandleAPIError(ctx *gin.Context, err error) {
	if verr, ok := apperrors.AsValidationError(err); ok {
		violations := make([]dto.ErrorDetail, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			violations = append(violations, dto.ErrorDetail{
				Code:     dto.ErrorCodeValidationFailed,
				Field:    v.Field,
				Message:  v.Message,
				Severity: dto.ErrorSeverityError,
			})
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(violations)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	var (
		status int
		detail *dto.ErrorDetail
	)

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account has been disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid authentication token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		detail = dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have permission to perform this action")
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrDriveNotFound),
		errors.Is(err, apperrors.ErrFeedbackNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		status = http.StatusConflict
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrFeedbackAlreadyDecided):
		status = http.StatusConflict
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Feedback has already been decided")
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	default:
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
	}

	ctx.JSON(status, dto.NewErrorResponse(detail))
}
