package dto

import "github.com/arvind/placementdesk/internal/app/models"

// RoundPayload is one interview round inside a feedback submission
type RoundPayload struct {
	RoundNumber int    `json:"roundNumber"`
	RoundType   string `json:"roundType"`
	Duration    string `json:"duration"`
	Difficulty  string `json:"difficulty"`
	Questions   string `json:"questions"`
	Experience  string `json:"experience"`
}

// SubmitFeedbackRequest represents a student feedback submission. Field-level
// validation happens in the feedback service so that every violation is
// reported at once.
type SubmitFeedbackRequest struct {
	CompanyName       string         `json:"companyName"`
	DriveID           *int64         `json:"driveId,omitempty"`
	JobRole           string         `json:"jobRole"`
	Package           string         `json:"package"`
	OverallDifficulty string         `json:"overallDifficulty"`
	Tips              string         `json:"tips"`
	Suggestions       string         `json:"suggestions"`
	Rounds            []RoundPayload `json:"rounds"`
}

// UpdateFeedbackStatusRequest approves or rejects a pending feedback.
// Remarks are mandatory on rejection; the service enforces it.
type UpdateFeedbackStatusRequest struct {
	Status  models.FeedbackStatus `json:"status" binding:"required"`
	Remarks string                `json:"remarks"`
}

// PublicFeedbackFilter are the optional filters of the public listing
type PublicFeedbackFilter struct {
	Department string `form:"department"`
	Company    string `form:"company"`
}
