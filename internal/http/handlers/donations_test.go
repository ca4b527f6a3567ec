package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"server/internal/domain"
)

func TestDonationsCreateRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5.00", "abc"} {
		app := newTestApp()
		donations := newFakeDonationRepo()
		app.Donations = donations

		body := `{"amount":"` + amount + `","donor_name":"Walk-in"}`
		rec := httptest.NewRecorder()
		app.DonationsCreate(rec, authedRequest(http.MethodPost, "/v1/donations", body, 1, "admin"))
		assertStatus(t, rec, http.StatusBadRequest)
		if len(donations.donations) != 0 {
			t.Fatalf("amount %q: donation stored despite rejection", amount)
		}
	}
}

func TestDonationsCreateAttributed(t *testing.T) {
	app := newTestApp()
	donations := newFakeDonationRepo()
	app.Donations = donations

	body := `{"user_id":3,"amount":"50.00","message":"keep it up"}`
	rec := httptest.NewRecorder()
	app.DonationsCreate(rec, authedRequest(http.MethodPost, "/v1/donations", body, 1, "admin"))
	assertStatus(t, rec, http.StatusCreated)

	var dto donationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if dto.Amount != "50.00" {
		t.Fatalf("amount = %q, want 50.00", dto.Amount)
	}
	if dto.AmountDisplay == "" {
		t.Fatal("expected a localized amount display")
	}
	if dto.UserID == nil || *dto.UserID != 3 {
		t.Fatalf("user_id = %v, want 3", dto.UserID)
	}
}

func TestDonationsAmendDetach(t *testing.T) {
	app := newTestApp()
	donations := newFakeDonationRepo()
	app.Donations = donations
	uid := int64(3)
	_ = donations.Record(context.Background(), &domain.Donation{UserID: &uid, Amount: decimal.RequireFromString("40.00")})

	body := `{"reassign_user":true}`
	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPatch, "/v1/donations/1", body, 1, "admin"), 1)
	app.DonationsAmend(rec, r)
	assertStatus(t, rec, http.StatusOK)

	if donations.lastAmendment == nil {
		t.Fatal("amendment not forwarded to the repository")
	}
	if !donations.lastAmendment.ReassignUser {
		t.Fatal("expected ReassignUser to be set")
	}
	if donations.lastAmendment.NewUserID != nil {
		t.Fatal("expected a detach, not a reassignment")
	}
}

func TestDonationsAmendReassign(t *testing.T) {
	app := newTestApp()
	donations := newFakeDonationRepo()
	app.Donations = donations
	uid := int64(3)
	_ = donations.Record(context.Background(), &domain.Donation{UserID: &uid, Amount: decimal.RequireFromString("40.00")})

	body := `{"reassign_user":true,"new_user_id":9,"amount":"45.50"}`
	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPatch, "/v1/donations/1", body, 1, "admin"), 1)
	app.DonationsAmend(rec, r)
	assertStatus(t, rec, http.StatusOK)

	var dto donationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if dto.UserID == nil || *dto.UserID != 9 {
		t.Fatalf("user_id = %v, want 9", dto.UserID)
	}
	if dto.Amount != "45.50" {
		t.Fatalf("amount = %q, want 45.50", dto.Amount)
	}
}

func TestDonationsRemoveMissing(t *testing.T) {
	app := newTestApp()
	app.Donations = newFakeDonationRepo()

	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodDelete, "/v1/donations/99", "", 1, "admin"), 99)
	app.DonationsRemove(rec, r)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestUserDonationsListOwnership(t *testing.T) {
	app := newTestApp()
	donations := newFakeDonationRepo()
	app.Donations = donations
	uid := int64(3)
	_ = donations.Record(context.Background(), &domain.Donation{UserID: &uid, Amount: decimal.RequireFromString("25.00")})

	// Another participant is turned away.
	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodGet, "/v1/users/3/donations", "", 4, "participant"), 3)
	app.UserDonationsList(rec, r)
	assertStatus(t, rec, http.StatusForbidden)

	// The owner sees their donations.
	rec = httptest.NewRecorder()
	r = withPathID(authedRequest(http.MethodGet, "/v1/users/3/donations", "", 3, "participant"), 3)
	app.UserDonationsList(rec, r)
	assertStatus(t, rec, http.StatusOK)

	var resp struct {
		Items []donationDTO `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(resp.Items))
	}
}

func TestDisplayAmountLocales(t *testing.T) {
	amount := decimal.RequireFromString("1234.50")
	for _, locale := range []string{"en", "es", "fr", "not-a-locale"} {
		if got := displayAmount(locale, amount); got == "" {
			t.Fatalf("locale %q: empty display string", locale)
		}
	}
}
