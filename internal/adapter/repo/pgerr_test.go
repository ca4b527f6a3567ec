package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
)

func TestMapPGError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "event_registrations_user_id_event_id_key"},
			want: domain.ErrConflict,
		},
		{
			name: "check violation",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "surveys_satisfaction_rating_check"},
			want: domain.ErrConstraintViolation,
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: "23502", ColumnName: "amount"},
			want: domain.ErrConstraintViolation,
		},
		{
			name: "foreign key violation",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "donations_user_id_fkey"},
			want: domain.ErrReferential,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapPGError(tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("mapPGError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMapPGErrorPassthrough(t *testing.T) {
	if got := mapPGError(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	plain := fmt.Errorf("connection reset")
	if got := mapPGError(plain); got != plain {
		t.Fatalf("expected passthrough, got %v", got)
	}

	other := &pgconn.PgError{Code: "57014"}
	if got := mapPGError(other); !errors.As(got, new(*pgconn.PgError)) {
		t.Fatalf("expected original pg error, got %v", got)
	}
}

func TestMapPGErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("insert registration: %w", &pgconn.PgError{Code: "23505"})
	if got := mapPGError(wrapped); !errors.Is(got, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict through wrapping, got %v", got)
	}
}
