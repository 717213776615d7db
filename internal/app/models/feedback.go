package models

import (
	"time"
)

// FeedbackStatus is the approval state of a feedback submission.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "PENDING"
	FeedbackApproved FeedbackStatus = "APPROVED"
	FeedbackRejected FeedbackStatus = "REJECTED"
)

// Terminal reports whether the status permits no further transitions.
func (s FeedbackStatus) Terminal() bool {
	return s == FeedbackApproved || s == FeedbackRejected
}

// Feedback defines an interview-experience report based on the 'feedback'
// table. Feedback and its Rounds form a single aggregate: rounds are created
// together with the parent and cascade-deleted with it.
type Feedback struct {
	ID                int64          `json:"id" db:"id" example:"1"`
	StudentID         int64          `json:"studentId" db:"student_id"`
	DriveID           *int64         `json:"driveId,omitempty" db:"drive_id"`
	CompanyName       string         `json:"companyName" db:"company_name" example:"Infora Systems"`
	Department        string         `json:"department" db:"department" example:"CSE"` // copied from the student at creation time
	JobRole           string         `json:"jobRole" db:"job_role" example:"Backend Engineer"`
	Package           *string        `json:"package,omitempty" db:"package" example:"12 LPA"`
	OverallDifficulty string         `json:"overallDifficulty" db:"overall_difficulty" example:"MEDIUM"`
	Tips              *string        `json:"tips,omitempty" db:"tips"`
	Suggestions       *string        `json:"suggestions,omitempty" db:"suggestions"`
	Status            FeedbackStatus `json:"status" db:"status" example:"PENDING"`
	Remarks           *string        `json:"remarks,omitempty" db:"remarks"` // set only on rejection
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`

	Rounds  []Round          `json:"rounds,omitempty"`  // relation, no db tag
	Student *FeedbackStudent `json:"student,omitempty"` // relation, no db tag
}

// FeedbackStudent is the public slice of the owning student attached to
// feedback listings. Credentials never travel with it.
type FeedbackStudent struct {
	Name       string  `json:"name" example:"Asha Menon"`
	Department string  `json:"department" example:"CSE"`
	RollNumber *string `json:"rollNumber,omitempty" example:"21CS042"` // admin listings only
}

// Round is one interview stage within a feedback submission. Rounds have no
// lifecycle of their own: never reordered or edited after submission.
type Round struct {
	ID          int64   `json:"id" db:"id"`
	FeedbackID  int64   `json:"feedbackId" db:"feedback_id"`
	RoundNumber int     `json:"roundNumber" db:"round_number" example:"1"`
	RoundType   string  `json:"roundType" db:"round_type" example:"TECHNICAL"`
	Duration    *string `json:"duration,omitempty" db:"duration" example:"45m"`
	Difficulty  string  `json:"difficulty" db:"difficulty" example:"HARD"`
	Questions   *string `json:"questions,omitempty" db:"questions"`
	Experience  *string `json:"experience,omitempty" db:"experience"`
}
