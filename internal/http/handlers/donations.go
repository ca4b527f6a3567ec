package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"server/internal/domain"
	"server/internal/middleware"
)

type donationRequest struct {
	UserID       *int64 `json:"user_id"`
	Amount       string `json:"amount"`
	DonorName    string `json:"donor_name"`
	DonorEmail   string `json:"donor_email"`
	Message      string `json:"message"`
	DonationDate string `json:"donation_date"`
}

type donationDTO struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id,omitempty"`
	Amount        string    `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	DonorName     string    `json:"donor_name,omitempty"`
	DonorEmail    string    `json:"donor_email,omitempty"`
	Message       string    `json:"message,omitempty"`
	DonationDate  *string   `json:"donation_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDonationDTO(d *domain.Donation, locale string) donationDTO {
	dto := donationDTO{
		ID:            d.ID,
		UserID:        d.UserID,
		Amount:        d.Amount.StringFixed(2),
		AmountDisplay: displayAmount(locale, d.Amount),
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		Message:       d.Message,
		CreatedAt:     d.CreatedAt,
	}
	if d.DonationDate != nil {
		s := d.DonationDate.Format("2006-01-02")
		dto.DonationDate = &s
	}
	return dto
}

// displayAmount renders the amount in USD following the visitor's locale
// conventions.
func displayAmount(locale string, amount decimal.Decimal) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(currency.USD.Amount(amount.InexactFloat64())))
}

// DonationsCreate records a donation, attributed to a user or anonymous.
// Amount positivity is a route-level rule only; the schema accepts any value
// so that imports can carry historical corrections.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be a decimal string")
		return
	}
	if !amount.IsPositive() {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	donation := &domain.Donation{
		UserID:     req.UserID,
		Amount:     amount,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Message:    req.Message,
	}
	if req.DonationDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DonationDate)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "donation_date must be YYYY-MM-DD")
			return
		}
		donation.DonationDate = &parsed
	}

	if err := a.Donations.Record(r.Context(), donation); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationDTO(donation, middleware.LocaleFromContext(r.Context())))
}

type donationAmendRequest struct {
	Amount       *string `json:"amount"`
	ReassignUser bool    `json:"reassign_user"`
	NewUserID    *int64  `json:"new_user_id"`
	Message      *string `json:"message"`
	DonationDate *string `json:"donation_date"`
}

// DonationsAmend applies a partial update. Setting reassign_user moves the
// donation to new_user_id, or detaches it when new_user_id is absent; both the
// old and the new owner totals are recomputed in the same transaction.
func (a *App) DonationsAmend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid donation id")
		return
	}
	var req donationAmendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	change := domain.DonationAmendment{
		ReassignUser: req.ReassignUser,
		NewUserID:    req.NewUserID,
		Message:      req.Message,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "amount must be a decimal string")
			return
		}
		if !amount.IsPositive() {
			a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
			return
		}
		change.Amount = &amount
	}
	if req.DonationDate != nil && *req.DonationDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DonationDate)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "donation_date must be YYYY-MM-DD")
			return
		}
		change.DonationDate = &parsed
	}

	if err := a.Donations.Amend(r.Context(), id, change); err != nil {
		a.domainError(w, err)
		return
	}
	donation, err := a.Donations.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toDonationDTO(donation, middleware.LocaleFromContext(r.Context())))
}

func (a *App) DonationsRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid donation id")
		return
	}
	if err := a.Donations.Remove(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	donations, err := a.Donations.ListRecent(r.Context(), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	items := make([]donationDTO, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationDTO(&donations[i], locale))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) UserDonationsList(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	if !canAccessUser(r, userID) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot access another account")
		return
	}
	donations, err := a.Donations.ListByUser(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	items := make([]donationDTO, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationDTO(&donations[i], locale))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
