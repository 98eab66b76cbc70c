package models

// Enrollment statuses
const (
	EnrollmentStatusEnrolled   = "ENROLLED"
	EnrollmentStatusInProgress = "IN_PROGRESS"
	EnrollmentStatusCompleted  = "COMPLETED"
)

// Enrollment grants a user access to a purchased course and carries
// cumulative progress. When ViewedContentIDs is present it is authoritative;
// otherwise the numeric Progress percentage is all the record holds.
type Enrollment struct {
	ID               string   `json:"id"`
	UserID           string   `json:"userId"`
	CourseID         string   `json:"courseId"`
	Status           string   `json:"status"`
	Progress         int      `json:"progress"` // 0-100
	ViewedContentIDs []string `json:"viewedContentIds,omitempty"`
}
