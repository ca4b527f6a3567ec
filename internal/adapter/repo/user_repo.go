package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

const userColumns = `id, email, name, password_hash, role, date_of_birth, phone, location, affiliation, interest, total_donations, login_count, created_at`

// Create inserts a new account. A duplicate email surfaces as ErrConflict.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	role := user.Role
	if role == "" {
		role = domain.UserRoleParticipant
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (email, name, password_hash, role, date_of_birth, phone, location, affiliation, interest)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
RETURNING id, role, total_donations, login_count, created_at;
`, user.Email, user.Name, user.PasswordHash, role, user.DateOfBirth, user.Phone, user.Location, user.Affiliation, user.Interest)
	if err := row.Scan(&user.ID, &user.Role, &user.TotalDonations, &user.LoginCount, &user.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

// GetByID fetches an account by primary key.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	return scanUser(row)
}

// GetByEmail fetches an account by its unique email.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	return scanUser(row)
}

// List returns accounts ordered by creation time.
func (r *UserRepositoryPG) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateProfile applies a partial profile update. total_donations and
// login_count are deliberately unreachable from here.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET name = COALESCE($2, name),
    date_of_birth = COALESCE($3, date_of_birth),
    phone = COALESCE($4, phone),
    location = COALESCE($5, location),
    affiliation = COALESCE($6, affiliation),
    interest = COALESCE($7, interest)
WHERE id = $1;
`, id, update.Name, update.DateOfBirth, update.Phone, update.Location, update.Affiliation, update.Interest)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementLoginCount bumps the login counter. Called by the auth flow only.
func (r *UserRepositoryPG) IncrementLoginCount(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET login_count = login_count + 1 WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the account. Registrations, enrollments, surveys and
// milestone awards cascade away; donations keep their rows with user_id
// nulled, all per the schema's referential actions.
func (r *UserRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return mapPGError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var phone, location, affiliation, interest *string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.DateOfBirth,
		&phone, &location, &affiliation, &interest, &u.TotalDonations, &u.LoginCount, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Phone = deref(phone)
	u.Location = deref(location)
	u.Affiliation = deref(affiliation)
	u.Interest = deref(interest)
	return &u, nil
}
