package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// MilestoneRepositoryPG implements domain.MilestoneRepository.
type MilestoneRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewMilestoneRepository(pool *pgxpool.Pool) *MilestoneRepositoryPG {
	return &MilestoneRepositoryPG{pool: pool}
}

// CreateMilestone adds a catalog entry. Titles are unique; duplicates surface
// as ErrConflict.
func (r *MilestoneRepositoryPG) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO milestones (title, description)
VALUES ($1, NULLIF($2, ''))
RETURNING id, created_at;
`, m.Title, m.Description)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *MilestoneRepositoryPG) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, created_at FROM milestones ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var description *string
		if err := rows.Scan(&m.ID, &m.Title, &description, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Description = deref(description)
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Award records a milestone for a user. A nonexistent user or milestone
// surfaces as ErrReferential.
func (r *MilestoneRepositoryPG) Award(ctx context.Context, award *domain.ParticipantMilestone) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO participant_milestones (user_id, milestone_id, custom_title, achieved_at)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`, award.UserID, award.MilestoneID, award.CustomTitle, award.AchievedAt)
	if err := row.Scan(&award.ID, &award.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *MilestoneRepositoryPG) ListAwardsByUser(ctx context.Context, userID int64) ([]domain.ParticipantMilestone, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, milestone_id, custom_title, achieved_at, created_at
FROM participant_milestones
WHERE user_id = $1
ORDER BY created_at;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ParticipantMilestone
	for rows.Next() {
		var pm domain.ParticipantMilestone
		if err := rows.Scan(&pm.ID, &pm.UserID, &pm.MilestoneID, &pm.CustomTitle, &pm.AchievedAt, &pm.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MilestoneRepositoryPG) DeleteAward(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM participant_milestones WHERE id = $1;`, id)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
