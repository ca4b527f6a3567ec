package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"server/internal/domain"
)

func eventFixture(id int64, capacity *int, deadline *time.Time) *domain.Event {
	return &domain.Event{
		ID:                   id,
		Title:                "Volunteer Training",
		StartTime:            time.Now().Add(48 * time.Hour),
		Capacity:             capacity,
		RegistrationDeadline: deadline,
	}
}

func TestRegisterSuccess(t *testing.T) {
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{5: eventFixture(5, nil, nil)}}
	regs := newFakeRegistrationRepo()
	app.Registrations = regs

	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPost, "/v1/events/5/registrations", "", 3, "participant"), 5)
	app.Register(rec, r)
	assertStatus(t, rec, http.StatusCreated)

	if n, _ := regs.CountByEvent(context.Background(), 5); n != 1 {
		t.Fatalf("registrations = %d, want 1", n)
	}
}

func TestRegisterDeadlinePassed(t *testing.T) {
	deadline := time.Now().Add(-time.Hour)
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{5: eventFixture(5, nil, &deadline)}}
	regs := newFakeRegistrationRepo()
	app.Registrations = regs

	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPost, "/v1/events/5/registrations", "", 3, "participant"), 5)
	app.Register(rec, r)
	assertStatus(t, rec, http.StatusUnprocessableEntity)

	if n, _ := regs.CountByEvent(context.Background(), 5); n != 0 {
		t.Fatalf("registrations = %d, want 0", n)
	}
}

func TestRegisterEventFull(t *testing.T) {
	capacity := 1
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{5: eventFixture(5, &capacity, nil)}}
	regs := newFakeRegistrationRepo()
	app.Registrations = regs
	_ = regs.Create(context.Background(), &domain.EventRegistration{UserID: 9, EventID: 5})

	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPost, "/v1/events/5/registrations", "", 3, "participant"), 5)
	app.Register(rec, r)
	assertStatus(t, rec, http.StatusConflict)
}

func TestRegisterDuplicate(t *testing.T) {
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{5: eventFixture(5, nil, nil)}}
	regs := newFakeRegistrationRepo()
	regs.duplicate = true
	app.Registrations = regs

	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPost, "/v1/events/5/registrations", "", 3, "participant"), 5)
	app.Register(rec, r)
	assertStatus(t, rec, http.StatusConflict)
}

func TestRegisterUnknownEvent(t *testing.T) {
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{}}
	app.Registrations = newFakeRegistrationRepo()

	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodPost, "/v1/events/9/registrations", "", 3, "participant"), 9)
	app.Register(rec, r)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestRegistrationsCancelOwnership(t *testing.T) {
	app := newTestApp()
	regs := newFakeRegistrationRepo()
	app.Registrations = regs
	_ = regs.Create(context.Background(), &domain.EventRegistration{UserID: 3, EventID: 5})

	// A different participant cannot cancel it.
	rec := httptest.NewRecorder()
	r := withPathID(authedRequest(http.MethodDelete, "/v1/registrations/1", "", 4, "participant"), 1)
	app.RegistrationsCancel(rec, r)
	assertStatus(t, rec, http.StatusForbidden)

	// The owner can.
	rec = httptest.NewRecorder()
	r = withPathID(authedRequest(http.MethodDelete, "/v1/registrations/1", "", 3, "participant"), 1)
	app.RegistrationsCancel(rec, r)
	assertStatus(t, rec, http.StatusNoContent)

	if n, _ := regs.CountByEvent(context.Background(), 5); n != 0 {
		t.Fatalf("registrations = %d, want 0 after cancel", n)
	}
}
