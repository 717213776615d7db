package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvind/placementdesk/internal/db"
)

// EligibilityRepository handles database operations for the drive eligibility roster
type EligibilityRepository struct {
	db *pgxpool.Pool
}

// NewEligibilityRepository creates a new eligibility repository
func NewEligibilityRepository(db *pgxpool.Pool) *EligibilityRepository {
	return &EligibilityRepository{
		db: db,
	}
}

// ReplaceForDrive atomically replaces the whole roster of a drive: every
// existing row is deleted, then one row per student id is inserted. A partial
// write would leave the roster cleared but not repopulated, so both steps run
// in one transaction. ON CONFLICT collapses duplicated input ids.
func (r *EligibilityRepository) ReplaceForDrive(ctx context.Context, driveID int64, studentIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM drive_eligibility WHERE drive_id = $1`, driveID); err != nil {
			return fmt.Errorf("error clearing eligibility roster: %w", err)
		}

		for _, studentID := range studentIDs {
			_, err := tx.Exec(ctx, `
				INSERT INTO drive_eligibility (student_id, drive_id, is_eligible)
				VALUES ($1, $2, TRUE)
				ON CONFLICT (student_id, drive_id) DO NOTHING
			`, studentID, driveID)
			if err != nil {
				return fmt.Errorf("error inserting eligibility row: %w", err)
			}
		}

		return nil
	})
}

// EligibleIDsForDrive returns the set of student ids currently eligible for a drive
func (r *EligibilityRepository) EligibleIDsForDrive(ctx context.Context, driveID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id FROM drive_eligibility
		WHERE drive_id = $1 AND is_eligible
	`, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	eligible := make(map[int64]bool)
	for rows.Next() {
		var studentID int64
		if err := rows.Scan(&studentID); err != nil {
			return nil, err
		}
		eligible[studentID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return eligible, nil
}
