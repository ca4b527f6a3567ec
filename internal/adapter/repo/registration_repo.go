package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// RegistrationRepositoryPG implements domain.RegistrationRepository.
type RegistrationRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepositoryPG {
	return &RegistrationRepositoryPG{pool: pool}
}

// Create registers a user for an event. A second registration for the same
// (user, event) pair hits the unique constraint and surfaces as ErrConflict;
// a nonexistent user or event surfaces as ErrReferential.
func (r *RegistrationRepositoryPG) Create(ctx context.Context, reg *domain.EventRegistration) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO event_registrations (user_id, event_id)
VALUES ($1, $2)
RETURNING id, registered_at;
`, reg.UserID, reg.EventID)
	if err := row.Scan(&reg.ID, &reg.RegisteredAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *RegistrationRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.EventRegistration, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, user_id, event_id, registered_at FROM event_registrations WHERE id = $1;`, id)
	var reg domain.EventRegistration
	if err := row.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepositoryPG) ListByEvent(ctx context.Context, eventID int64) ([]domain.EventRegistration, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, user_id, event_id, registered_at FROM event_registrations WHERE event_id = $1 ORDER BY registered_at;`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EventRegistration
	for rows.Next() {
		var reg domain.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		items = append(items, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountByEvent feeds the route layer's advisory capacity check.
func (r *RegistrationRepositoryPG) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1;`, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete cancels a registration. Surveys tied to it cascade away.
func (r *RegistrationRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM event_registrations WHERE id = $1;`, id)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
