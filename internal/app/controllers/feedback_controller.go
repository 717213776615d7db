package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/app/services"
	"github.com/arvind/placementdesk/internal/middleware"
)

// FeedbackController handles feedback submission, listing and the approval workflow
type FeedbackController struct {
	feedbackService *services.FeedbackService
	logger          zerolog.Logger
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService, logger zerolog.Logger) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Submit creates a feedback submission
// @Summary Submit interview feedback
// @Description Creates a pending feedback with its interview rounds in one atomic write. Every validation violation is reported at once.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitFeedbackRequest true "Feedback submission"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Feedback submitted"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Student role required"
// @Failure 404 {object} dto.ErrorResponse "Referenced drive not found"
// @Router /feedback [post]
func (c *FeedbackController) Submit(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid feedback submission payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	feedback, err := c.feedbackService.Submit(ctx.Request.Context(), identity.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      feedback,
		Timestamp: time.Now(),
	})
}

// ListPublic lists approved feedback
// @Summary Browse approved feedback
// @Description Returns approved feedback only, newest first, optionally filtered by department and a case-insensitive company substring
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param department query string false "Filter by department"
// @Param company query string false "Filter by company name substring"
// @Success 200 {object} dto.APIResponse{data=[]models.Feedback} "Approved feedback"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /feedback/public [get]
func (c *FeedbackController) ListPublic(ctx *gin.Context) {
	var filter dto.PublicFeedbackFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	feedbacks, err := c.feedbackService.ListPublic(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      feedbacks,
		Timestamp: time.Now(),
	})
}

// ListAll lists every feedback for admin oversight
// @Summary List all feedback
// @Description Returns every feedback regardless of status with student roll numbers
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Feedback} "All feedback"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /feedback/admin/all [get]
func (c *FeedbackController) ListAll(ctx *gin.Context) {
	feedbacks, err := c.feedbackService.ListAllForAdmin(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      feedbacks,
		Timestamp: time.Now(),
	})
}

// ListPending lists the caller department's pending review queue
// @Summary List pending feedback
// @Description Returns the pending feedback of the coordinator's department, newest first
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Feedback} "Pending feedback"
// @Failure 403 {object} dto.ErrorResponse "Coordinator role required"
// @Router /feedback/coordinator/pending [get]
func (c *FeedbackController) ListPending(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	feedbacks, err := c.feedbackService.ListPendingForDepartment(ctx.Request.Context(), identity.Department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      feedbacks,
		Timestamp: time.Now(),
	})
}

// UpdateStatus approves or rejects a feedback
// @Summary Decide a pending feedback
// @Description Approves or rejects a pending feedback. Remarks are mandatory on rejection. A decided feedback cannot be decided again.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body dto.UpdateFeedbackStatusRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.Feedback} "Updated feedback"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Feedback belongs to another department"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Failure 409 {object} dto.ErrorResponse "Feedback already decided"
// @Router /feedback/{id}/status [patch]
func (c *FeedbackController) UpdateStatus(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback ID").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateFeedbackStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	feedback, err := c.feedbackService.UpdateStatus(ctx.Request.Context(), identity, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      feedback,
		Timestamp: time.Now(),
	})
}
