package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/arvind/placementdesk/internal/app/controllers"
	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	driveController *controllers.DriveController,
	feedbackController *controllers.FeedbackController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
		{
			admin.POST("/coordinators", adminController.CreateCoordinator)
			admin.GET("/coordinators", adminController.ListCoordinators)
			admin.PATCH("/coordinators/:id", adminController.ToggleCoordinator)
			admin.GET("/stats", adminController.GetStats)
		}

		// Drive routes
		drives := authenticated.Group("/drives")
		{
			// Student view of their own eligibility
			drivesStudent := drives.Group("")
			drivesStudent.Use(authMiddleware.RolesRequired(models.RoleStudent))
			{
				drivesStudent.GET("/mine", driveController.ListEligibleDrives)
			}

			// Coordinator and admin drive management
			drivesStaff := drives.Group("")
			drivesStaff.Use(authMiddleware.RolesRequired(models.RoleCoordinator, models.RoleAdmin))
			{
				drivesStaff.POST("", driveController.CreateDrive)
				drivesStaff.GET("/department", driveController.ListDrives)
				drivesStaff.GET("/students/:department", driveController.ListStudents)
				drivesStaff.POST("/:driveId/students", driveController.SetEligibleStudents)
			}
		}

		// Feedback routes
		feedback := authenticated.Group("/feedback")
		{
			// Approved feedback is readable by every authenticated role
			feedback.GET("/public", feedbackController.ListPublic)

			feedbackStudent := feedback.Group("")
			feedbackStudent.Use(authMiddleware.RolesRequired(models.RoleStudent))
			{
				feedbackStudent.POST("", feedbackController.Submit)
			}

			feedbackAdmin := feedback.Group("")
			feedbackAdmin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
			{
				feedbackAdmin.GET("/admin/all", feedbackController.ListAll)
			}

			feedbackStaff := feedback.Group("")
			feedbackStaff.Use(authMiddleware.RolesRequired(models.RoleCoordinator, models.RoleAdmin))
			{
				feedbackStaff.GET("/coordinator/pending", feedbackController.ListPending)
				feedbackStaff.PATCH("/:id/status", feedbackController.UpdateStatus)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger and metrics routes are set up in bootstrap.go already
}
