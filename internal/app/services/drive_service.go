package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
	"github.com/arvind/placementdesk/internal/pkg/helpers"
)

// DriveService handles placement drives and their eligibility rosters
type DriveService struct {
	driveRepo       DriveStore
	eligibilityRepo EligibilityStore
	userRepo        UserStore
	logger          zerolog.Logger
}

// NewDriveService creates a new DriveService
func NewDriveService(driveRepo DriveStore, eligibilityRepo EligibilityStore, userRepo UserStore, logger zerolog.Logger) *DriveService {
	return &DriveService{
		driveRepo:       driveRepo,
		eligibilityRepo: eligibilityRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// CreateDrive creates a placement drive. A coordinator may only create drives
// for their own department; admins may create for any.
func (s *DriveService) CreateDrive(ctx context.Context, actor models.Identity, req *dto.CreateDriveRequest) (*models.PlacementDrive, error) {
	verr := apperrors.NewValidationError()
	if strings.TrimSpace(req.CompanyName) == "" {
		verr.Add("companyName", "company name is required")
	}
	if strings.TrimSpace(req.Department) == "" {
		verr.Add("department", "department is required")
	}
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		verr.Add("date", "date must be RFC 3339 or YYYY-MM-DD")
	}
	if verr.HasViolations() {
		return nil, verr
	}

	if actor.Role == models.RoleCoordinator && req.Department != actor.Department {
		return nil, apperrors.ErrPermissionDenied
	}

	drive := &models.PlacementDrive{
		CompanyName: req.CompanyName,
		Date:        date,
		Department:  req.Department,
	}
	if req.Description != "" {
		drive.Description = &req.Description
	}

	if err := s.driveRepo.Create(ctx, drive); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("driveID", drive.ID).Str("company", drive.CompanyName).
		Str("department", drive.Department).Msg("Placement drive created")
	return drive, nil
}

// ListByDepartment returns the drives of one department with live eligible counts
func (s *DriveService) ListByDepartment(ctx context.Context, department string) ([]*models.PlacementDrive, error) {
	return s.driveRepo.ListByDepartment(ctx, department)
}

// ListStudents returns the students of a department. When driveID is non-nil,
// each row is annotated with whether the student is currently eligible for
// that drive; without a drive the flag is omitted entirely.
func (s *DriveService) ListStudents(ctx context.Context, department string, driveID *int64) ([]dto.StudentWithEligibility, error) {
	students, err := s.userRepo.ListStudentsByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	var eligible map[int64]bool
	if driveID != nil {
		if _, err := s.driveRepo.GetByID(ctx, *driveID); err != nil {
			return nil, err
		}
		if eligible, err = s.eligibilityRepo.EligibleIDsForDrive(ctx, *driveID); err != nil {
			return nil, err
		}
	}

	result := make([]dto.StudentWithEligibility, 0, len(students))
	for _, student := range students {
		row := dto.StudentWithEligibility{
			ID:         student.ID,
			Name:       student.Name,
			Email:      student.Email,
			RollNumber: student.RollNumber,
		}
		if driveID != nil {
			isEligible := eligible[student.ID]
			row.IsEligible = &isEligible
		}
		result = append(result, row)
	}

	return result, nil
}

// SetEligibleStudents replaces the full eligibility roster of a drive. The
// submitted list is authoritative: students not in it lose eligibility, and an
// empty list clears the roster. Duplicate ids collapse to one row.
func (s *DriveService) SetEligibleStudents(ctx context.Context, driveID int64, studentIDs []int64) error {
	if _, err := s.driveRepo.GetByID(ctx, driveID); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(studentIDs))
	unique := make([]int64, 0, len(studentIDs))
	for _, id := range studentIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	if err := s.eligibilityRepo.ReplaceForDrive(ctx, driveID, unique); err != nil {
		return err
	}

	s.logger.Info().Int64("driveID", driveID).Int("students", len(unique)).Msg("Eligibility roster replaced")
	return nil
}

// ListEligibleDrives returns the drives the student is currently eligible for
func (s *DriveService) ListEligibleDrives(ctx context.Context, studentID int64) ([]*models.PlacementDrive, error) {
	return s.driveRepo.ListEligibleForStudent(ctx, studentID)
}
