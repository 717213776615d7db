package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/app/services"
	"github.com/arvind/placementdesk/internal/middleware"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

// DriveController handles placement drives and eligibility rosters
type DriveController struct {
	driveService *services.DriveService
	logger       zerolog.Logger
}

// NewDriveController creates a new DriveController
func NewDriveController(driveService *services.DriveService, logger zerolog.Logger) *DriveController {
	return &DriveController{
		driveService: driveService,
		logger:       logger,
	}
}

// CreateDrive creates a placement drive
// @Summary Create a placement drive
// @Description Creates a drive for one department. Coordinators may only create drives for their own department.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDriveRequest true "Drive information"
// @Success 201 {object} dto.APIResponse{data=models.PlacementDrive} "Drive created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Wrong department or insufficient role"
// @Router /drives [post]
func (c *DriveController) CreateDrive(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateDriveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid drive creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	drive, err := c.driveService.CreateDrive(ctx.Request.Context(), identity, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      drive,
		Timestamp: time.Now(),
	})
}

// ListDrives lists the caller department's drives
// @Summary List department drives
// @Description Returns the drives of the caller's department, newest first, with live eligible-student counts
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PlacementDrive} "Drive list"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /drives/department [get]
func (c *DriveController) ListDrives(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	drives, err := c.driveService.ListByDepartment(ctx.Request.Context(), identity.Department)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      drives,
		Timestamp: time.Now(),
	})
}

// ListStudents lists a department's students for roster selection
// @Summary List department students
// @Description Returns the students of one department. A coordinator may only view their own department. With a driveId query each row carries its current eligibility for that drive.
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Param department path string true "Department"
// @Param driveId query int false "Drive to annotate eligibility against"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentWithEligibility} "Student list"
// @Failure 400 {object} dto.ErrorResponse "Invalid driveId"
// @Failure 403 {object} dto.ErrorResponse "Department belongs to another coordinator"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/students/{department} [get]
func (c *DriveController) ListStudents(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	department := ctx.Param("department")
	if identity.Role == models.RoleCoordinator && department != identity.Department {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var driveID *int64
	if raw := ctx.Query("driveId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid drive ID").WithField("driveId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		driveID = &id
	}

	students, err := c.driveService.ListStudents(ctx.Request.Context(), department, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// SetEligibleStudents replaces a drive's eligibility roster
// @Summary Replace the eligibility roster
// @Description Atomically replaces the full set of eligible students for a drive. An empty list clears the roster.
// @Tags drives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param driveId path int true "Drive ID"
// @Param request body dto.SetEligibleStudentsRequest true "Replacement roster"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Roster replaced"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Drive not found"
// @Router /drives/{driveId}/students [post]
func (c *DriveController) SetEligibleStudents(ctx *gin.Context) {
	driveID, err := strconv.ParseInt(ctx.Param("driveId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid drive ID").WithField("driveId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SetEligibleStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.driveService.SetEligibleStudents(ctx.Request.Context(), driveID, req.StudentIDs); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Eligibility roster updated"},
		Timestamp: time.Now(),
	})
}

// ListEligibleDrives lists the drives the calling student is eligible for
// @Summary List my eligible drives
// @Description Returns the drives the authenticated student currently holds eligibility for, newest first
// @Tags drives
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PlacementDrive} "Eligible drives"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /drives/mine [get]
func (c *DriveController) ListEligibleDrives(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	drives, err := c.driveService.ListEligibleDrives(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      drives,
		Timestamp: time.Now(),
	})
}
