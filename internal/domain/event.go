package domain

import "time"

// EventTemplate defines a recurring event. Concrete events may reference a
// template; deleting the template clears the reference without touching the
// scheduled occurrences.
type EventTemplate struct {
	ID              int64
	Title           string
	Description     string
	Location        string
	DefaultCapacity *int
	CreatedAt       time.Time
}

// Event is a concrete scheduled occurrence.
//
// Capacity and RegistrationDeadline are advisory: the registration route
// checks them, the schema does not.
type Event struct {
	ID                   int64
	TemplateID           *int64
	Title                string
	Description          string
	Location             string
	StartTime            time.Time
	EndTime              *time.Time
	Capacity             *int
	RegistrationDeadline *time.Time
	CreatedAt            time.Time
}
