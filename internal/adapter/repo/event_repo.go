package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// EventTemplateRepositoryPG implements domain.EventTemplateRepository.
type EventTemplateRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewEventTemplateRepository(pool *pgxpool.Pool) *EventTemplateRepositoryPG {
	return &EventTemplateRepositoryPG{pool: pool}
}

func (r *EventTemplateRepositoryPG) Create(ctx context.Context, tpl *domain.EventTemplate) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO event_templates (title, description, location, default_capacity)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
RETURNING id, created_at;
`, tpl.Title, tpl.Description, tpl.Location, tpl.DefaultCapacity)
	if err := row.Scan(&tpl.ID, &tpl.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *EventTemplateRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.EventTemplate, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, title, description, location, default_capacity, created_at FROM event_templates WHERE id = $1;`, id)
	return scanEventTemplate(row)
}

func (r *EventTemplateRepositoryPG) List(ctx context.Context) ([]domain.EventTemplate, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, description, location, default_capacity, created_at FROM event_templates ORDER BY title;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EventTemplate
	for rows.Next() {
		tpl, err := scanEventTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a template. Events referencing it keep running with the
// reference cleared (ON DELETE SET NULL).
func (r *EventTemplateRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM event_templates WHERE id = $1;`, id)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEventTemplate(row pgx.Row) (*domain.EventTemplate, error) {
	var tpl domain.EventTemplate
	var description, location *string
	if err := row.Scan(&tpl.ID, &tpl.Title, &description, &location, &tpl.DefaultCapacity, &tpl.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tpl.Description = deref(description)
	tpl.Location = deref(location)
	return &tpl, nil
}

// EventRepositoryPG implements domain.EventRepository.
type EventRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepositoryPG {
	return &EventRepositoryPG{pool: pool}
}

const eventColumns = `id, event_template_id, title, description, location, start_time, end_time, capacity, registration_deadline, created_at`

func (r *EventRepositoryPG) Create(ctx context.Context, event *domain.Event) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO events (event_template_id, title, description, location, start_time, end_time, capacity, registration_deadline)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8)
RETURNING id, created_at;
`, event.TemplateID, event.Title, event.Description, event.Location, event.StartTime, event.EndTime, event.Capacity, event.RegistrationDeadline)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *EventRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1;`, id)
	return scanEvent(row)
}

func (r *EventRepositoryPG) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_time DESC, id LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *EventRepositoryPG) Update(ctx context.Context, event *domain.Event) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE events
SET title = $2,
    description = NULLIF($3, ''),
    location = NULLIF($4, ''),
    start_time = $5,
    end_time = $6,
    capacity = $7,
    registration_deadline = $8
WHERE id = $1;
`, event.ID, event.Title, event.Description, event.Location, event.StartTime, event.EndTime, event.Capacity, event.RegistrationDeadline)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an event together with its registrations and surveys
// (cascade); donations and milestone awards are untouched.
func (r *EventRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	var description, location *string
	if err := row.Scan(&e.ID, &e.TemplateID, &e.Title, &description, &location,
		&e.StartTime, &e.EndTime, &e.Capacity, &e.RegistrationDeadline, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Description = deref(description)
	e.Location = deref(location)
	return &e, nil
}
