package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
)

// DriveRepository handles database operations for placement drives
type DriveRepository struct {
	db *pgxpool.Pool
}

// NewDriveRepository creates a new drive repository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{
		db: db,
	}
}

// Create inserts a new placement drive and fills in its generated ID.
// Drives are immutable afterwards; there is no update or delete.
func (r *DriveRepository) Create(ctx context.Context, drive *models.PlacementDrive) error {
	query := `
		INSERT INTO placement_drives (company_name, drive_date, department, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		drive.CompanyName, drive.Date, drive.Department, drive.Description,
	).Scan(&drive.ID, &drive.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating placement drive: %w", err)
	}

	return nil
}

// GetByID retrieves a drive by ID
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.PlacementDrive, error) {
	query := `
		SELECT id, company_name, drive_date, department, description, created_at
		FROM placement_drives
		WHERE id = $1
	`

	var drive models.PlacementDrive
	err := r.db.QueryRow(ctx, query, id).Scan(
		&drive.ID,
		&drive.CompanyName,
		&drive.Date,
		&drive.Department,
		&drive.Description,
		&drive.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving placement drive: %w", err)
	}

	return &drive, nil
}

// ListByDepartment retrieves a department's drives, newest first, each
// annotated with the count of currently eligible students. The count is
// recomputed on every read, never cached.
func (r *DriveRepository) ListByDepartment(ctx context.Context, department string) ([]*models.PlacementDrive, error) {
	query := `
		SELECT d.id, d.company_name, d.drive_date, d.department, d.description, d.created_at,
		       COUNT(e.student_id) FILTER (WHERE e.is_eligible)
		FROM placement_drives d
		LEFT JOIN drive_eligibility e ON e.drive_id = d.id
		WHERE d.department = $1
		GROUP BY d.id
		ORDER BY d.drive_date DESC
	`

	rows, err := r.db.Query(ctx, query, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drives []*models.PlacementDrive
	for rows.Next() {
		var drive models.PlacementDrive
		if err := rows.Scan(
			&drive.ID,
			&drive.CompanyName,
			&drive.Date,
			&drive.Department,
			&drive.Description,
			&drive.CreatedAt,
			&drive.EligibleCount,
		); err != nil {
			return nil, err
		}
		drives = append(drives, &drive)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drives, nil
}

// ListEligibleForStudent retrieves all drives the student currently holds an
// eligible row for, newest first.
func (r *DriveRepository) ListEligibleForStudent(ctx context.Context, studentID int64) ([]*models.PlacementDrive, error) {
	query := `
		SELECT d.id, d.company_name, d.drive_date, d.department, d.description, d.created_at
		FROM placement_drives d
		JOIN drive_eligibility e ON e.drive_id = d.id
		WHERE e.student_id = $1 AND e.is_eligible
		ORDER BY d.drive_date DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drives []*models.PlacementDrive
	for rows.Next() {
		var drive models.PlacementDrive
		if err := rows.Scan(
			&drive.ID,
			&drive.CompanyName,
			&drive.Date,
			&drive.Department,
			&drive.Description,
			&drive.CreatedAt,
		); err != nil {
			return nil, err
		}
		drives = append(drives, &drive)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drives, nil
}
