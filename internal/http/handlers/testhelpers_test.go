package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/middleware"
)

func newTestApp() *App {
	return &App{
		Logger:     zerolog.Nop(),
		Hasher:     fakeHasher{},
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}
}

func authedRequest(method, target, body string, userID int64, role string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), userID, role))
}

func withPathID(r *http.Request, id int64) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", strconv.FormatInt(id, 10))
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

// fakeUserRepo keeps accounts in memory and mimics the adapter's sentinel
// behavior.
type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var items []domain.User
	for _, u := range f.users {
		items = append(items, *u)
	}
	return items, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Location != nil {
		u.Location = *update.Location
	}
	if update.Affiliation != nil {
		u.Affiliation = *update.Affiliation
	}
	if update.Interest != nil {
		u.Interest = *update.Interest
	}
	if update.DateOfBirth != nil {
		u.DateOfBirth = update.DateOfBirth
	}
	return nil
}

func (f *fakeUserRepo) IncrementLoginCount(ctx context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LoginCount++
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeDonationRepo records calls for assertions.
type fakeDonationRepo struct {
	donations     map[int64]*domain.Donation
	nextID        int64
	lastAmendID   int64
	lastAmendment *domain.DonationAmendment
}

func newFakeDonationRepo() *fakeDonationRepo {
	return &fakeDonationRepo{donations: make(map[int64]*domain.Donation), nextID: 1}
}

func (f *fakeDonationRepo) Record(ctx context.Context, donation *domain.Donation) error {
	donation.ID = f.nextID
	f.nextID++
	donation.CreatedAt = time.Now()
	stored := *donation
	f.donations[donation.ID] = &stored
	return nil
}

func (f *fakeDonationRepo) Amend(ctx context.Context, id int64, change domain.DonationAmendment) error {
	d, ok := f.donations[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.lastAmendID = id
	f.lastAmendment = &change
	if change.Amount != nil {
		d.Amount = *change.Amount
	}
	if change.ReassignUser {
		d.UserID = change.NewUserID
	}
	if change.Message != nil {
		d.Message = *change.Message
	}
	if change.DonationDate != nil {
		d.DonationDate = change.DonationDate
	}
	return nil
}

func (f *fakeDonationRepo) Remove(ctx context.Context, id int64) error {
	if _, ok := f.donations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.donations, id)
	return nil
}

func (f *fakeDonationRepo) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	d, ok := f.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDonationRepo) ListRecent(ctx context.Context, limit int) ([]domain.Donation, error) {
	var items []domain.Donation
	for _, d := range f.donations {
		items = append(items, *d)
	}
	return items, nil
}

func (f *fakeDonationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Donation, error) {
	var items []domain.Donation
	for _, d := range f.donations {
		if d.UserID != nil && *d.UserID == userID {
			items = append(items, *d)
		}
	}
	return items, nil
}

// fakeEventRepo serves a fixed set of events.
type fakeEventRepo struct {
	events map[int64]*domain.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	event.ID = int64(len(f.events) + 1)
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEventRepo) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error { return nil }

// fakeRegistrationRepo counts registrations per event and can simulate
// duplicates.
type fakeRegistrationRepo struct {
	regs      map[int64]*domain.EventRegistration
	nextID    int64
	duplicate bool
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: make(map[int64]*domain.EventRegistration), nextID: 1}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if f.duplicate {
		return domain.ErrConflict
	}
	reg.ID = f.nextID
	f.nextID++
	reg.RegisteredAt = time.Now()
	stored := *reg
	f.regs[reg.ID] = &stored
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int64) (*domain.EventRegistration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *reg
	return &copied, nil
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.EventRegistration, error) {
	var items []domain.EventRegistration
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			items = append(items, *reg)
		}
	}
	return items, nil
}

func (f *fakeRegistrationRepo) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	n := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.regs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.regs, id)
	return nil
}

// fakeSurveyRepo stores surveys in memory.
type fakeSurveyRepo struct {
	surveys []domain.Survey
}

func (f *fakeSurveyRepo) Create(ctx context.Context, survey *domain.Survey) error {
	survey.ID = int64(len(f.surveys) + 1)
	survey.CreatedAt = time.Now()
	f.surveys = append(f.surveys, *survey)
	return nil
}

func (f *fakeSurveyRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.Survey, error) {
	var items []domain.Survey
	for _, s := range f.surveys {
		if s.EventID == eventID {
			items = append(items, s)
		}
	}
	return items, nil
}
