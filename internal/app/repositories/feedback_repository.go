package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/db"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

// FeedbackRepository handles database operations for feedback and its rounds
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
	}
}

// CreateWithRounds persists the feedback aggregate: the parent row and every
// round insert in one transaction, so a Feedback row never exists without its
// Rounds.
func (r *FeedbackRepository) CreateWithRounds(ctx context.Context, feedback *models.Feedback) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO feedback (student_id, drive_id, company_name, department, job_role,
			                      package, overall_difficulty, tips, suggestions, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query,
			feedback.StudentID, feedback.DriveID, feedback.CompanyName, feedback.Department,
			feedback.JobRole, feedback.Package, feedback.OverallDifficulty,
			feedback.Tips, feedback.Suggestions, feedback.Status,
		).Scan(&feedback.ID, &feedback.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating feedback: %w", err)
		}

		for i := range feedback.Rounds {
			round := &feedback.Rounds[i]
			round.FeedbackID = feedback.ID

			err := tx.QueryRow(ctx, `
				INSERT INTO rounds (feedback_id, round_number, round_type, duration, difficulty, questions, experience)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id
			`, round.FeedbackID, round.RoundNumber, round.RoundType, round.Duration,
				round.Difficulty, round.Questions, round.Experience,
			).Scan(&round.ID)
			if err != nil {
				return fmt.Errorf("error creating round %d: %w", round.RoundNumber, err)
			}
		}

		return nil
	})
}

// GetByID retrieves a feedback (without rounds) by ID
func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	query := `
		SELECT id, student_id, drive_id, company_name, department, job_role, package,
		       overall_difficulty, tips, suggestions, status, remarks, created_at
		FROM feedback
		WHERE id = $1
	`

	feedback, err := scanFeedback(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	return feedback, nil
}

// UpdateStatus sets the approval status and remarks of a feedback
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id int64, status models.FeedbackStatus, remarks *string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE feedback SET status = $1, remarks = $2 WHERE id = $3`, status, remarks, id)
	if err != nil {
		return fmt.Errorf("error updating feedback status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFeedbackNotFound
	}

	return nil
}

// ListApproved retrieves approved feedback, newest first, optionally filtered
// by department and a case-insensitive company-name substring. Each row
// carries the owning student's public name and department.
func (r *FeedbackRepository) ListApproved(ctx context.Context, department, company string) ([]*models.Feedback, error) {
	query := `
		SELECT f.id, f.student_id, f.drive_id, f.company_name, f.department, f.job_role, f.package,
		       f.overall_difficulty, f.tips, f.suggestions, f.status, f.remarks, f.created_at,
		       u.name, u.department
		FROM feedback f
		JOIN users u ON u.id = f.student_id
		WHERE f.status = $1
		  AND ($2 = '' OR f.department = $2)
		  AND ($3 = '' OR f.company_name ILIKE '%' || $3 || '%')
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, models.FeedbackApproved, department, company)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFeedbackWithStudent(rows, false)
}

// ListAll retrieves every feedback regardless of status, newest first, with
// the student's name, department and roll number for admin oversight.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	query := `
		SELECT f.id, f.student_id, f.drive_id, f.company_name, f.department, f.job_role, f.package,
		       f.overall_difficulty, f.tips, f.suggestions, f.status, f.remarks, f.created_at,
		       u.name, u.department, u.roll_number
		FROM feedback f
		JOIN users u ON u.id = f.student_id
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFeedbackWithStudent(rows, true)
}

// ListPendingByDepartment retrieves pending feedback of one department with
// the submitting student's name and roll number.
func (r *FeedbackRepository) ListPendingByDepartment(ctx context.Context, department string) ([]*models.Feedback, error) {
	query := `
		SELECT f.id, f.student_id, f.drive_id, f.company_name, f.department, f.job_role, f.package,
		       f.overall_difficulty, f.tips, f.suggestions, f.status, f.remarks, f.created_at,
		       u.name, u.department, u.roll_number
		FROM feedback f
		JOIN users u ON u.id = f.student_id
		WHERE f.status = $1 AND f.department = $2
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, models.FeedbackPending, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFeedbackWithStudent(rows, true)
}

// GetRounds retrieves the rounds of a feedback ordered by round number
func (r *FeedbackRepository) GetRounds(ctx context.Context, feedbackID int64) ([]models.Round, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, feedback_id, round_number, round_type, duration, difficulty, questions, experience
		FROM rounds
		WHERE feedback_id = $1
		ORDER BY round_number
	`, feedbackID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []models.Round
	for rows.Next() {
		var round models.Round
		if err := rows.Scan(
			&round.ID,
			&round.FeedbackID,
			&round.RoundNumber,
			&round.RoundType,
			&round.Duration,
			&round.Difficulty,
			&round.Questions,
			&round.Experience,
		); err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

// CountAll counts all feedback rows
func (r *FeedbackRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting feedback: %w", err)
	}
	return count, nil
}

// CountByStatus counts feedback rows in one status
func (r *FeedbackRepository) CountByStatus(ctx context.Context, status models.FeedbackStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting feedback by status: %w", err)
	}
	return count, nil
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var feedback models.Feedback
	err := row.Scan(
		&feedback.ID,
		&feedback.StudentID,
		&feedback.DriveID,
		&feedback.CompanyName,
		&feedback.Department,
		&feedback.JobRole,
		&feedback.Package,
		&feedback.OverallDifficulty,
		&feedback.Tips,
		&feedback.Suggestions,
		&feedback.Status,
		&feedback.Remarks,
		&feedback.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func collectFeedbackWithStudent(rows pgx.Rows, withRollNumber bool) ([]*models.Feedback, error) {
	var feedbacks []*models.Feedback
	for rows.Next() {
		var feedback models.Feedback
		var student models.FeedbackStudent

		dest := []interface{}{
			&feedback.ID,
			&feedback.StudentID,
			&feedback.DriveID,
			&feedback.CompanyName,
			&feedback.Department,
			&feedback.JobRole,
			&feedback.Package,
			&feedback.OverallDifficulty,
			&feedback.Tips,
			&feedback.Suggestions,
			&feedback.Status,
			&feedback.Remarks,
			&feedback.CreatedAt,
			&student.Name,
			&student.Department,
		}
		if withRollNumber {
			dest = append(dest, &student.RollNumber)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		feedback.Student = &student
		feedbacks = append(feedbacks, &feedback)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feedbacks, nil
}
