package handlers

import (
	"errors"
	"net/http"

	"server/internal/domain"
)

// domainError translates persistence-layer sentinels into HTTP responses.
// Anything unrecognized is logged and reported as an internal error.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", "resource already exists")
	case errors.Is(err, domain.ErrConstraintViolation):
		a.error(w, http.StatusUnprocessableEntity, "constraint_violation", "value rejected by a data constraint")
	case errors.Is(err, domain.ErrReferential):
		a.error(w, http.StatusUnprocessableEntity, "invalid_reference", "referenced resource does not exist")
	case errors.Is(err, domain.ErrAggregateRecompute):
		a.Logger.Error().Err(err).Msg("donation total recomputation failed")
		a.error(w, http.StatusInternalServerError, "aggregate_recompute_failed", "failed to update donation totals")
	default:
		a.Logger.Error().Err(err).Msg("unhandled storage error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
