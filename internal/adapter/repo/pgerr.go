package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
)

// PostgreSQL error classes for integrity violations.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
)

// mapPGError translates integrity violations into the domain error taxonomy.
// The violated constraint's name is kept in the message so callers can log a
// precise cause without parsing driver errors.
func mapPGError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrConflict)
	case codeCheckViolation, codeNotNullViolation:
		name := pgErr.ConstraintName
		if name == "" {
			name = pgErr.ColumnName
		}
		return fmt.Errorf("%s: %w", name, domain.ErrConstraintViolation)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrReferential)
	}
	return err
}
