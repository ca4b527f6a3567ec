package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole enumerates supported account roles.
type UserRole string

const (
	UserRoleParticipant UserRole = "participant"
	UserRoleAdmin       UserRole = "admin"
)

// User represents a participant or administrator account.
//
// TotalDonations is denormalized: it always equals the sum of amount over the
// user's donation rows and is written exclusively by the donation repository's
// recomputation step, never by profile updates.
type User struct {
	ID             int64
	Email          string
	Name           string
	PasswordHash   string
	Role           UserRole
	DateOfBirth    *time.Time
	Phone          string
	Location       string
	Affiliation    string
	Interest       string
	TotalDonations decimal.Decimal
	LoginCount     int
	CreatedAt      time.Time
}

// IsAdmin reports whether the account has administrative privileges.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// ProfileUpdate carries the mutable profile fields of a user. Nil pointers
// leave the stored value untouched.
type ProfileUpdate struct {
	Name        *string
	DateOfBirth *time.Time
	Phone       *string
	Location    *string
	Affiliation *string
	Interest    *string
}

// PasswordHasher is the credential-hashing capability the service consumes
// from its environment. Hashes are stored opaquely and never interpreted.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
