package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation represents a monetary contribution. UserID is nullable on purpose:
// donations survive deletion of the contributing account, and walk-in donors
// without an account are recorded through the donor display fields alone.
//
// DonationDate is the real-world contribution date for backfilled imports and
// is distinct from CreatedAt, the record-creation time.
type Donation struct {
	ID           int64
	UserID       *int64
	Amount       decimal.Decimal
	DonorName    string
	DonorEmail   string
	Message      string
	DonationDate *time.Time
	CreatedAt    time.Time
}

// DonationAmendment describes a partial update to a donation. Nil pointers
// leave the stored value untouched. Reassigning the donor is tri-state:
// ReassignUser false keeps the current owner, true with a nil NewUserID
// detaches the donation, true with a value moves it to another user.
type DonationAmendment struct {
	Amount       *decimal.Decimal
	ReassignUser bool
	NewUserID    *int64
	Message      *string
	DonationDate *time.Time
}
