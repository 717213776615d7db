package dto

import "time"

// CreateCoordinatorRequest represents an admin request to create a coordinator
type CreateCoordinatorRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required"`
}

// ToggleCoordinatorRequest represents a request to enable or disable a coordinator
type ToggleCoordinatorRequest struct {
	IsEnabled *bool `json:"isEnabled" binding:"required"`
}

// CoordinatorResponse represents a coordinator in admin listings
type CoordinatorResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	IsEnabled  bool      `json:"isEnabled"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DashboardStats holds the aggregate counts shown on the admin dashboard
type DashboardStats struct {
	TotalFeedbacks    int64 `json:"totalFeedbacks"`
	ApprovedFeedbacks int64 `json:"approvedFeedbacks"`
	PendingFeedbacks  int64 `json:"pendingFeedbacks"`
	RejectedFeedbacks int64 `json:"rejectedFeedbacks"`
	TotalStudents     int64 `json:"totalStudents"`
	TotalCoordinators int64 `json:"totalCoordinators"`
}
