package domain

import "time"

// Milestone is a catalog entry describing an achievement type. Titles are
// globally unique.
type Milestone struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// ParticipantMilestone records that a user reached a milestone, optionally
// under a custom title.
type ParticipantMilestone struct {
	ID          int64
	UserID      int64
	MilestoneID int64
	CustomTitle *string
	AchievedAt  *time.Time
	CreatedAt   time.Time
}
