package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
	"server/internal/metrics"
)

// donationDB is the slice of pgxpool.Pool the repository needs. Mutations go
// through Begin; reads hit the pool directly.
type donationDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DonationRepositoryPG implements domain.DonationRepository backed by
// PostgreSQL. It is the sole write path to the donations relation: every
// mutation and the recomputation of the affected users' total_donations run
// in one transaction, so a committed donation write is never visible without
// its aggregate.
type DonationRepositoryPG struct {
	db donationDB
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: pool}
}

// RecomputeTotalDonations rewrites users.total_donations for the given user
// from the sum of their donation rows. Full recomputation from source is
// deliberate: it stays correct when an amendment changes the amount or moves
// the donation to another user, where incremental deltas would need old-value
// tracking. The UPDATE's row lock on the user serializes concurrent
// recomputations for the same user.
//
// Must run inside the same transaction as the donation mutation; a failure
// here aborts that transaction.
func RecomputeTotalDonations(ctx context.Context, tx pgx.Tx, userID int64) error {
	tag, err := tx.Exec(ctx, `
UPDATE users
SET total_donations = COALESCE((SELECT SUM(amount) FROM donations WHERE user_id = $1), 0)
WHERE id = $1;
`, userID)
	if err != nil {
		metrics.RecomputeFailures.Inc()
		return fmt.Errorf("recompute user %d: %v: %w", userID, err, domain.ErrAggregateRecompute)
	}
	if tag.RowsAffected() == 0 {
		metrics.RecomputeFailures.Inc()
		return fmt.Errorf("recompute user %d: user row missing: %w", userID, domain.ErrAggregateRecompute)
	}
	return nil
}

// Record inserts a donation and, when attributed, recomputes the owner's
// total in the same transaction.
func (r *DonationRepositoryPG) Record(ctx context.Context, donation *domain.Donation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
INSERT INTO donations (user_id, amount, donor_name, donor_email, message, donation_date)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
RETURNING id, created_at;
`, donation.UserID, donation.Amount, donation.DonorName, donation.DonorEmail, donation.Message, donation.DonationDate)
	if err := row.Scan(&donation.ID, &donation.CreatedAt); err != nil {
		return mapPGError(err)
	}

	if donation.UserID != nil {
		if err := RecomputeTotalDonations(ctx, tx, *donation.UserID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	metrics.DonationsRecorded.Inc()
	return nil
}

// Amend applies a partial update. When the amendment reassigns the donation
// between users, both the old and the new owner's totals are recomputed
// before commit.
func (r *DonationRepositoryPG) Amend(ctx context.Context, id int64, change domain.DonationAmendment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var oldUserID *int64
	if err := tx.QueryRow(ctx, `SELECT user_id FROM donations WHERE id = $1 FOR UPDATE;`, id).Scan(&oldUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	newUserID := oldUserID
	if change.ReassignUser {
		newUserID = change.NewUserID
	}

	if _, err := tx.Exec(ctx, `
UPDATE donations
SET user_id = $2,
    amount = COALESCE($3, amount),
    message = COALESCE($4, message),
    donation_date = COALESCE($5, donation_date)
WHERE id = $1;
`, id, newUserID, change.Amount, change.Message, change.DonationDate); err != nil {
		return mapPGError(err)
	}

	for _, uid := range affectedOwners(oldUserID, newUserID) {
		if err := RecomputeTotalDonations(ctx, tx, uid); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	metrics.DonationsAmended.Inc()
	return nil
}

// Remove deletes a donation and recomputes the former owner's total.
func (r *DonationRepositoryPG) Remove(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var ownerID *int64
	if err := tx.QueryRow(ctx, `DELETE FROM donations WHERE id = $1 RETURNING user_id;`, id).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if ownerID != nil {
		if err := RecomputeTotalDonations(ctx, tx, *ownerID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	metrics.DonationsRemoved.Inc()
	return nil
}

// affectedOwners returns the distinct non-nil owners touched by a mutation,
// old owner first.
func affectedOwners(oldID, newID *int64) []int64 {
	var ids []int64
	if oldID != nil {
		ids = append(ids, *oldID)
	}
	if newID != nil && (oldID == nil || *newID != *oldID) {
		ids = append(ids, *newID)
	}
	return ids
}

const donationColumns = `id, user_id, amount, donor_name, donor_email, message, donation_date, created_at`

// GetByID fetches a single donation.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+donationColumns+` FROM donations WHERE id = $1;`, id)
	return scanDonation(row)
}

// ListRecent returns recent donations limited by the input value.
func (r *DonationRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+donationColumns+` FROM donations ORDER BY created_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

// ListByUser returns all donations attributed to the user, newest first.
func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID int64) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+donationColumns+` FROM donations WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	var donorName, donorEmail, message *string
	if err := row.Scan(&d.ID, &d.UserID, &d.Amount, &donorName, &donorEmail, &message, &d.DonationDate, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.DonorName = deref(donorName)
	d.DonorEmail = deref(donorEmail)
	d.Message = deref(message)
	return &d, nil
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	defer rows.Close()
	var items []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
