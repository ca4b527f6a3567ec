package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"server/internal/sqlinline"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary)
	var users, events, registrations, activeEnrollments, donations int64
	var donated decimal.Decimal
	if err := row.Scan(&users, &events, &registrations, &activeEnrollments, &donations, &donated); err != nil {
		a.Logger.Error().Err(err).Msg("stats summary failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"users":              users,
		"events":             events,
		"registrations":      registrations,
		"active_enrollments": activeEnrollments,
		"donations":          donations,
		"total_donated":      donated.StringFixed(2),
	})
}
