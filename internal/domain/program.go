package domain

import "time"

// Program is a longer-running offering users enroll into.
type Program struct {
	ID          int64
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
}

// EnrollmentStatus tracks a participant's standing within a program.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// ProgramEnrollment joins a user to a program. One enrollment row exists per
// (user, program) pair.
type ProgramEnrollment struct {
	ID         int64
	UserID     int64
	ProgramID  int64
	Status     EnrollmentStatus
	EnrolledAt time.Time
}
