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
)

// AdminController handles coordinator management and dashboard statistics
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

func coordinatorResponse(user *models.User) dto.CoordinatorResponse {
	return dto.CoordinatorResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Department: user.DepartmentOrEmpty(),
		IsEnabled:  user.IsEnabled,
		CreatedAt:  user.CreatedAt,
	}
}

// CreateCoordinator creates a coordinator account
// @Summary Create a coordinator
// @Description Creates an enabled coordinator account bound to one department
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCoordinatorRequest true "Coordinator information"
// @Success 201 {object} dto.APIResponse{data=dto.CoordinatorResponse} "Coordinator created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /admin/coordinators [post]
func (c *AdminController) CreateCoordinator(ctx *gin.Context) {
	var req dto.CreateCoordinatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid coordinator creation payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	coordinator, err := c.adminService.CreateCoordinator(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      coordinatorResponse(coordinator),
		Timestamp: time.Now(),
	})
}

// ListCoordinators lists every coordinator account
// @Summary List coordinators
// @Description Returns all coordinator accounts, enabled or not
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CoordinatorResponse} "Coordinator list"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/coordinators [get]
func (c *AdminController) ListCoordinators(ctx *gin.Context) {
	coordinators, err := c.adminService.ListCoordinators(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CoordinatorResponse, 0, len(coordinators))
	for _, coordinator := range coordinators {
		responses = append(responses, coordinatorResponse(coordinator))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// ToggleCoordinator enables or disables a coordinator
// @Summary Enable or disable a coordinator
// @Description Sets the enabled flag of a coordinator. Disabled coordinators cannot log in.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coordinator ID"
// @Param request body dto.ToggleCoordinatorRequest true "Desired enabled state"
// @Success 200 {object} dto.APIResponse{data=dto.CoordinatorResponse} "Updated coordinator"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Coordinator not found"
// @Router /admin/coordinators/{id} [patch]
func (c *AdminController) ToggleCoordinator(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coordinator ID").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ToggleCoordinatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	coordinator, err := c.adminService.SetCoordinatorEnabled(ctx.Request.Context(), id, *req.IsEnabled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      coordinatorResponse(coordinator),
		Timestamp: time.Now(),
	})
}

// GetStats returns the admin dashboard counters
// @Summary Dashboard statistics
// @Description Returns live feedback and account counts for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Dashboard counters"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.adminService.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}
