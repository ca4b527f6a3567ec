package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// ProgramRepositoryPG implements domain.ProgramRepository.
type ProgramRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewProgramRepository(pool *pgxpool.Pool) *ProgramRepositoryPG {
	return &ProgramRepositoryPG{pool: pool}
}

func (r *ProgramRepositoryPG) Create(ctx context.Context, p *domain.Program) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO programs (title, description, start_date, end_date)
VALUES ($1, NULLIF($2, ''), $3, $4)
RETURNING id, created_at;
`, p.Title, p.Description, p.StartDate, p.EndDate)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *ProgramRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, title, description, start_date, end_date, created_at FROM programs WHERE id = $1;`, id)
	return scanProgram(row)
}

func (r *ProgramRepositoryPG) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, start_date, end_date, created_at FROM programs ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a program and cascades its enrollments.
func (r *ProgramRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1;`, id)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Enroll creates an enrollment row. One row exists per (user, program) pair;
// a duplicate surfaces as ErrConflict.
func (r *ProgramRepositoryPG) Enroll(ctx context.Context, enrollment *domain.ProgramEnrollment) error {
	status := enrollment.Status
	if status == "" {
		status = domain.EnrollmentActive
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO program_enrollments (user_id, program_id, status)
VALUES ($1, $2, $3)
RETURNING id, status, enrolled_at;
`, enrollment.UserID, enrollment.ProgramID, status)
	if err := row.Scan(&enrollment.ID, &enrollment.Status, &enrollment.EnrolledAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *ProgramRepositoryPG) UpdateEnrollmentStatus(ctx context.Context, enrollmentID int64, status domain.EnrollmentStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE program_enrollments SET status = $2 WHERE id = $1;`, enrollmentID, status)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProgramRepositoryPG) ListEnrollmentsByUser(ctx context.Context, userID int64) ([]domain.ProgramEnrollment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, program_id, status, enrolled_at
FROM program_enrollments
WHERE user_id = $1
ORDER BY enrolled_at;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ProgramEnrollment
	for rows.Next() {
		var e domain.ProgramEnrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProgramID, &e.Status, &e.EnrolledAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanProgram(row pgx.Row) (*domain.Program, error) {
	var p domain.Program
	var description *string
	if err := row.Scan(&p.ID, &p.Title, &description, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Description = deref(description)
	return &p, nil
}
