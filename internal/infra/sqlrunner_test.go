package infra

import (
	"strings"
	"testing"

	"server/internal/sqlinline"
)

func TestExtractMarker(t *testing.T) {
	query := "--sql 4c1f4f6e-9d2a-41bd-8a07-c4a55b3f2d18\nselect 1;"
	marker, trimmed, err := extractMarker(query)
	if err != nil {
		t.Fatalf("extractMarker returned error: %v", err)
	}
	if marker != "4c1f4f6e-9d2a-41bd-8a07-c4a55b3f2d18" {
		t.Fatalf("marker = %q", marker)
	}
	if strings.TrimSpace(trimmed) != "select 1;" {
		t.Fatalf("trimmed = %q", trimmed)
	}
}

func TestExtractMarkerRejectsUntagged(t *testing.T) {
	for _, query := range []string{
		"select 1;",
		"-- plain comment\nselect 1;",
		"--sql not-a-uuid\nselect 1;",
		"",
	} {
		if _, _, err := extractMarker(query); err == nil {
			t.Fatalf("expected error for %q", query)
		}
	}
}

func TestInlineStatementsCarryMarkers(t *testing.T) {
	for name, query := range map[string]string{
		"stats summary": sqlinline.QStatsSummary,
		"export ledger": sqlinline.QExportDonations,
		"export totals": sqlinline.QExportUserTotals,
	} {
		if _, _, err := extractMarker(query); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestErrorRowPropagates(t *testing.T) {
	_, _, err := extractMarker("select 1;")
	row := errorRow{err: err}
	var n int
	if scanErr := row.Scan(&n); scanErr == nil {
		t.Fatal("expected scan error")
	}
}
