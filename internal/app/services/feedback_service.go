package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

// FeedbackService handles feedback submission and the approval workflow
type FeedbackService struct {
	feedbackRepo FeedbackStore
	userRepo     UserStore
	driveRepo    DriveStore
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo FeedbackStore, userRepo UserStore, driveRepo DriveStore, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		driveRepo:    driveRepo,
		logger:       logger,
	}
}

// validateSubmission collects every violation of a submission payload: the
// required scalar fields plus the round-list shape. Rounds must number 1..n
// with no gaps so the stored order is unambiguous.
func validateSubmission(req *dto.SubmitFeedbackRequest) error {
	verr := apperrors.NewValidationError()

	if strings.TrimSpace(req.CompanyName) == "" {
		verr.Add("companyName", "company name is required")
	}
	if strings.TrimSpace(req.JobRole) == "" {
		verr.Add("jobRole", "job role is required")
	}
	if strings.TrimSpace(req.OverallDifficulty) == "" {
		verr.Add("overallDifficulty", "overall difficulty is required")
	}

	if len(req.Rounds) == 0 {
		verr.Add("rounds", "at least one round is required")
	}
	for i, round := range req.Rounds {
		field := fmt.Sprintf("rounds[%d]", i)
		if round.RoundNumber != i+1 {
			verr.Add(field+".roundNumber", fmt.Sprintf("round numbers must be sequential starting at 1, got %d", round.RoundNumber))
		}
		if strings.TrimSpace(round.RoundType) == "" {
			verr.Add(field+".roundType", "round type is required")
		}
		if strings.TrimSpace(round.Difficulty) == "" {
			verr.Add(field+".difficulty", "difficulty is required")
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Submit creates a feedback aggregate in PENDING status. The department is
// copied from the submitting student's record at this moment and stays frozen
// on the feedback afterwards.
func (s *FeedbackService) Submit(ctx context.Context, studentID int64, req *dto.SubmitFeedbackRequest) (*models.Feedback, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Department == nil {
		verr := apperrors.NewValidationError()
		verr.Add("department", "submitting account has no department")
		return nil, verr
	}

	if req.DriveID != nil {
		if _, err := s.driveRepo.GetByID(ctx, *req.DriveID); err != nil {
			return nil, err
		}
	}

	feedback := &models.Feedback{
		StudentID:         studentID,
		DriveID:           req.DriveID,
		CompanyName:       req.CompanyName,
		Department:        *student.Department,
		JobRole:           req.JobRole,
		Package:           optional(req.Package),
		OverallDifficulty: req.OverallDifficulty,
		Tips:              optional(req.Tips),
		Suggestions:       optional(req.Suggestions),
		Status:            models.FeedbackPending,
	}

	for _, round := range req.Rounds {
		feedback.Rounds = append(feedback.Rounds, models.Round{
			RoundNumber: round.RoundNumber,
			RoundType:   round.RoundType,
			Duration:    optional(round.Duration),
			Difficulty:  round.Difficulty,
			Questions:   optional(round.Questions),
			Experience:  optional(round.Experience),
		})
	}

	if err := s.feedbackRepo.CreateWithRounds(ctx, feedback); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("feedbackID", feedback.ID).Int64("studentID", studentID).
		Str("company", feedback.CompanyName).Int("rounds", len(feedback.Rounds)).Msg("Feedback submitted")
	return feedback, nil
}

// UpdateStatus approves or rejects a pending feedback. Once terminal the
// status never changes again; coordinators may only decide feedback of their
// own department.
func (s *FeedbackService) UpdateStatus(ctx context.Context, actor models.Identity, id int64, req *dto.UpdateFeedbackStatusRequest) (*models.Feedback, error) {
	verr := apperrors.NewValidationError()
	if req.Status != models.FeedbackApproved && req.Status != models.FeedbackRejected {
		verr.Add("status", "status must be APPROVED or REJECTED")
	}
	if req.Status == models.FeedbackRejected && strings.TrimSpace(req.Remarks) == "" {
		verr.Add("remarks", "remarks are required when rejecting")
	}
	if verr.HasViolations() {
		return nil, verr
	}

	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleCoordinator && feedback.Department != actor.Department {
		return nil, apperrors.ErrPermissionDenied
	}

	if feedback.Status.Terminal() {
		return nil, apperrors.ErrFeedbackAlreadyDecided
	}

	var remarks *string
	if req.Status == models.FeedbackRejected {
		remarks = &req.Remarks
	}

	if err := s.feedbackRepo.UpdateStatus(ctx, id, req.Status, remarks); err != nil {
		return nil, err
	}

	feedback.Status = req.Status
	feedback.Remarks = remarks

	s.logger.Info().Int64("feedbackID", id).Str("status", string(req.Status)).
		Int64("decidedBy", actor.UserID).Msg("Feedback decided")
	return feedback, nil
}

// attachRounds loads the round list onto each feedback so listings carry the
// full interview detail.
func (s *FeedbackService) attachRounds(ctx context.Context, feedbacks []*models.Feedback) error {
	for _, feedback := range feedbacks {
		rounds, err := s.feedbackRepo.GetRounds(ctx, feedback.ID)
		if err != nil {
			return err
		}
		feedback.Rounds = rounds
	}
	return nil
}

// ListPublic returns approved feedback only, optionally filtered by department
// and company-name substring. Pending and rejected submissions never appear.
func (s *FeedbackService) ListPublic(ctx context.Context, filter *dto.PublicFeedbackFilter) ([]*models.Feedback, error) {
	feedbacks, err := s.feedbackRepo.ListApproved(ctx, filter.Department, filter.Company)
	if err != nil {
		return nil, err
	}
	if err := s.attachRounds(ctx, feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// ListAllForAdmin returns every feedback regardless of status
func (s *FeedbackService) ListAllForAdmin(ctx context.Context) ([]*models.Feedback, error) {
	feedbacks, err := s.feedbackRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachRounds(ctx, feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// ListPendingForDepartment returns the pending review queue of one department
func (s *FeedbackService) ListPendingForDepartment(ctx context.Context, department string) ([]*models.Feedback, error) {
	feedbacks, err := s.feedbackRepo.ListPendingByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	if err := s.attachRounds(ctx, feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}
