package domain

import "time"

// EventRegistration joins a user to an event. A user may register for a given
// event at most once; the schema enforces the pair's uniqueness.
type EventRegistration struct {
	ID           int64
	UserID       int64
	EventID      int64
	RegisteredAt time.Time
}
