package domain

import "context"

// UserRepository defines access methods for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error
	IncrementLoginCount(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// EventTemplateRepository handles recurring-event definitions.
type EventTemplateRepository interface {
	Create(ctx context.Context, tpl *EventTemplate) error
	GetByID(ctx context.Context, id int64) (*EventTemplate, error)
	List(ctx context.Context) ([]EventTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// EventRepository handles scheduled event occurrences.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, limit, offset int) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
}

// RegistrationRepository joins users to events.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *EventRegistration) error
	GetByID(ctx context.Context, id int64) (*EventRegistration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]EventRegistration, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// SurveyRepository stores post-event feedback.
type SurveyRepository interface {
	Create(ctx context.Context, survey *Survey) error
	ListByEvent(ctx context.Context, eventID int64) ([]Survey, error)
}

// MilestoneRepository covers the achievement catalog and per-user awards.
type MilestoneRepository interface {
	CreateMilestone(ctx context.Context, m *Milestone) error
	ListMilestones(ctx context.Context) ([]Milestone, error)
	Award(ctx context.Context, award *ParticipantMilestone) error
	ListAwardsByUser(ctx context.Context, userID int64) ([]ParticipantMilestone, error)
	DeleteAward(ctx context.Context, id int64) error
}

// ProgramRepository covers program offerings and enrollments.
type ProgramRepository interface {
	Create(ctx context.Context, p *Program) error
	GetByID(ctx context.Context, id int64) (*Program, error)
	List(ctx context.Context) ([]Program, error)
	Delete(ctx context.Context, id int64) error
	Enroll(ctx context.Context, enrollment *ProgramEnrollment) error
	UpdateEnrollmentStatus(ctx context.Context, enrollmentID int64, status EnrollmentStatus) error
	ListEnrollmentsByUser(ctx context.Context, userID int64) ([]ProgramEnrollment, error)
}

// DonationRepository is the only write path to the donations relation. Each
// mutating method runs the donation write and the owner-total recomputation in
// one transaction; raw donation writes outside these methods would let
// users.total_donations drift from its source rows.
type DonationRepository interface {
	Record(ctx context.Context, donation *Donation) error
	Amend(ctx context.Context, id int64, change DonationAmendment) error
	Remove(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Donation, error)
	ListRecent(ctx context.Context, limit int) ([]Donation, error)
	ListByUser(ctx context.Context, userID int64) ([]Donation, error)
}
