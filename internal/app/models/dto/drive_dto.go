package dto

// CreateDriveRequest represents a request to create a placement drive
type CreateDriveRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Date        string `json:"date" binding:"required"` // RFC 3339 or YYYY-MM-DD
	Department  string `json:"department" binding:"required"`
	Description string `json:"description"`
}

// SetEligibleStudentsRequest carries the full replacement roster for a drive.
// An empty list clears the roster.
type SetEligibleStudentsRequest struct {
	StudentIDs []int64 `json:"studentIds" binding:"required"`
}

// StudentWithEligibility is a student row optionally annotated with a derived
// eligibility flag for a specific drive. The flag is never persisted on the
// student entity.
type StudentWithEligibility struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	RollNumber *string `json:"rollNumber,omitempty"`
	IsEligible *bool   `json:"isEligible,omitempty"` // present only when a driveId was supplied
}
