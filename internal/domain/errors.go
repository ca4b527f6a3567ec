package domain

import "errors"

// Failure taxonomy surfaced by the persistence layer. The adapter translates
// database errors into these sentinels so callers can branch with errors.Is
// without importing driver packages.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConflict            = errors.New("conflict")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrReferential         = errors.New("referential integrity violation")
	ErrAggregateRecompute  = errors.New("aggregate recomputation failed")
)
