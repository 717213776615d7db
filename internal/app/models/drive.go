package models

import (
	"time"
)

// PlacementDrive defines the drive model based on the 'placement_drives' table.
// Drives are immutable once created; there is no update or delete path.
type PlacementDrive struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	CompanyName string    `json:"companyName" db:"company_name" example:"Infora Systems"`
	Date        time.Time `json:"date" db:"drive_date" example:"2025-03-12T00:00:00Z"`
	Department  string    `json:"department" db:"department" example:"CSE"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// EligibleCount is a derived aggregate computed at read time, never stored.
	EligibleCount int `json:"eligibleCount" db:"-"`
}

// DriveEligibility is one row of the eligibility roster. The full set for a
// drive is replaced atomically whenever a coordinator resubmits the selection;
// (student_id, drive_id) is the primary key so a student appears at most once.
type DriveEligibility struct {
	StudentID  int64 `json:"studentId" db:"student_id"`
	DriveID    int64 `json:"driveId" db:"drive_id"`
	IsEligible bool  `json:"isEligible" db:"is_eligible"`
}
