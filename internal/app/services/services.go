package services

import (
	"context"

	"github.com/arvind/placementdesk/internal/app/models"
)

// The services depend on narrow store interfaces rather than the concrete pgx
// repositories so the storage-access dependency stays injectable (and the
// workflow rules testable without a database). The repositories package
// satisfies all of them.

// UserStore is the storage surface for user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListCoordinators(ctx context.Context) ([]*models.User, error)
	SetCoordinatorEnabled(ctx context.Context, id int64, enabled bool) error
	ListStudentsByDepartment(ctx context.Context, department string) ([]*models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// DriveStore is the storage surface for placement drives.
type DriveStore interface {
	Create(ctx context.Context, drive *models.PlacementDrive) error
	GetByID(ctx context.Context, id int64) (*models.PlacementDrive, error)
	ListByDepartment(ctx context.Context, department string) ([]*models.PlacementDrive, error)
	ListEligibleForStudent(ctx context.Context, studentID int64) ([]*models.PlacementDrive, error)
}

// EligibilityStore is the storage surface for the drive eligibility roster.
type EligibilityStore interface {
	ReplaceForDrive(ctx context.Context, driveID int64, studentIDs []int64) error
	EligibleIDsForDrive(ctx context.Context, driveID int64) (map[int64]bool, error)
}

// FeedbackStore is the storage surface for the feedback aggregate.
type FeedbackStore interface {
	CreateWithRounds(ctx context.Context, feedback *models.Feedback) error
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	UpdateStatus(ctx context.Context, id int64, status models.FeedbackStatus, remarks *string) error
	ListApproved(ctx context.Context, department, company string) ([]*models.Feedback, error)
	ListAll(ctx context.Context) ([]*models.Feedback, error)
	ListPendingByDepartment(ctx context.Context, department string) ([]*models.Feedback, error)
	GetRounds(ctx context.Context, feedbackID int64) ([]models.Round, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.FeedbackStatus) (int64, error)
}
