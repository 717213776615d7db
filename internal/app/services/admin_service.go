package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
	"github.com/arvind/placementdesk/internal/pkg/auth"
)

// AdminService handles coordinator management and dashboard statistics
type AdminService struct {
	userRepo     UserStore
	feedbackRepo FeedbackStore
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo UserStore, feedbackRepo FeedbackStore, logger zerolog.Logger) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// CreateCoordinator creates an enabled coordinator account bound to one department
func (s *AdminService) CreateCoordinator(ctx context.Context, req *dto.CreateCoordinatorRequest) (*models.User, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	coordinator := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hashed,
		Role:       models.RoleCoordinator,
		Department: &req.Department,
		IsEnabled:  true,
	}

	if err := s.userRepo.Create(ctx, coordinator); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("coordinatorID", coordinator.ID).Str("department", req.Department).Msg("Coordinator created")
	return coordinator, nil
}

// ListCoordinators returns every coordinator account, enabled or not
func (s *AdminService) ListCoordinators(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListCoordinators(ctx)
}

// SetCoordinatorEnabled enables or disables a coordinator. Disabling takes
// effect at the next login attempt and on the next authenticated request.
func (s *AdminService) SetCoordinatorEnabled(ctx context.Context, id int64, enabled bool) (*models.User, error) {
	if err := s.userRepo.SetCoordinatorEnabled(ctx, id, enabled); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("coordinatorID", id).Bool("enabled", enabled).Msg("Coordinator status changed")
	return s.userRepo.GetByID(ctx, id)
}

// GetDashboardStats computes the admin dashboard counters. All six counts are
// live queries; nothing is cached or denormalized.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	var err error
	if stats.TotalFeedbacks, err = s.feedbackRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("error counting feedback: %w", err)
	}
	if stats.ApprovedFeedbacks, err = s.feedbackRepo.CountByStatus(ctx, models.FeedbackApproved); err != nil {
		return nil, fmt.Errorf("error counting approved feedback: %w", err)
	}
	if stats.PendingFeedbacks, err = s.feedbackRepo.CountByStatus(ctx, models.FeedbackPending); err != nil {
		return nil, fmt.Errorf("error counting pending feedback: %w", err)
	}
	if stats.RejectedFeedbacks, err = s.feedbackRepo.CountByStatus(ctx, models.FeedbackRejected); err != nil {
		return nil, fmt.Errorf("error counting rejected feedback: %w", err)
	}
	if stats.TotalStudents, err = s.userRepo.CountByRole(ctx, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}
	if stats.TotalCoordinators, err = s.userRepo.CountByRole(ctx, models.RoleCoordinator); err != nil {
		return nil, fmt.Errorf("error counting coordinators: %w", err)
	}

	return stats, nil
}
