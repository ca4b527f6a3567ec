package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"server/internal/sqlinline"
	"server/pkg/ziputil"
)

// ExportDonations streams a zip archive holding the donation ledger and the
// per-user totals as CSV files.
func (a *App) ExportDonations(w http.ResponseWriter, r *http.Request) {
	donationsCSV, err := a.exportDonationsCSV(r)
	if err != nil {
		a.Logger.Error().Err(err).Msg("export donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to export donations")
		return
	}
	totalsCSV, err := a.exportTotalsCSV(r)
	if err != nil {
		a.Logger.Error().Err(err).Msg("export totals failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to export totals")
		return
	}

	archive, err := ziputil.Archive([]ziputil.Entry{
		{Name: "donations.csv", Body: donationsCSV},
		{Name: "user_totals.csv", Body: totalsCSV},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("zip archive failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="donations_export.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) exportDonationsCSV(r *http.Request) ([]byte, error) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QExportDonations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"id", "user_id", "donor", "amount", "message", "donation_date", "created_at"})
	for rows.Next() {
		var id int64
		var userID *int64
		var donor string
		var amount decimal.Decimal
		var msg *string
		var donationDate *time.Time
		var createdAt time.Time
		if err := rows.Scan(&id, &userID, &donor, &amount, &msg, &donationDate, &createdAt); err != nil {
			return nil, err
		}
		record := []string{
			strconv.FormatInt(id, 10),
			formatNullableID(userID),
			donor,
			amount.StringFixed(2),
			derefString(msg),
			formatNullableDate(donationDate),
			createdAt.Format(time.RFC3339),
		}
		_ = cw.Write(record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

func (a *App) exportTotalsCSV(r *http.Request) ([]byte, error) {
	rows, err := a.SQL.Query(r.Context(), sqlinline.QExportUserTotals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"id", "email", "name", "total_donations"})
	for rows.Next() {
		var id int64
		var email, name string
		var total decimal.Decimal
		if err := rows.Scan(&id, &email, &name, &total); err != nil {
			return nil, err
		}
		_ = cw.Write([]string{strconv.FormatInt(id, 10), email, name, total.StringFixed(2)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

func formatNullableID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatNullableDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
