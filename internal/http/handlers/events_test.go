package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
)

type fakeTemplateRepo struct {
	templates map[int64]*domain.EventTemplate
}

func (f *fakeTemplateRepo) Create(ctx context.Context, tpl *domain.EventTemplate) error {
	tpl.ID = int64(len(f.templates) + 1)
	stored := *tpl
	f.templates[tpl.ID] = &stored
	return nil
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id int64) (*domain.EventTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

func (f *fakeTemplateRepo) List(ctx context.Context) ([]domain.EventTemplate, error) {
	return nil, nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id int64) error { return nil }

func TestEventsCreateInheritsTemplate(t *testing.T) {
	app := newTestApp()
	capacity := 40
	app.Templates = &fakeTemplateRepo{templates: map[int64]*domain.EventTemplate{
		7: {ID: 7, Title: "Monthly Orientation", Location: "Main Hall", DefaultCapacity: &capacity},
	}}
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{}}

	req := authedRequest("POST", "/v1/events",
		`{"template_id": 7, "start_time": "2026-09-01T18:00:00Z"}`, 1, "admin")
	rec := httptest.NewRecorder()
	app.EventsCreate(rec, req)
	assertStatus(t, rec, 201)

	var got eventDTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Title != "Monthly Orientation" || got.Location != "Main Hall" {
		t.Fatalf("template fields not inherited: %+v", got)
	}
	if got.Capacity == nil || *got.Capacity != 40 {
		t.Fatalf("capacity = %v, want 40", got.Capacity)
	}
}

func TestEventsCreateOverridesTemplate(t *testing.T) {
	app := newTestApp()
	capacity := 40
	app.Templates = &fakeTemplateRepo{templates: map[int64]*domain.EventTemplate{
		7: {ID: 7, Title: "Monthly Orientation", DefaultCapacity: &capacity},
	}}
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{}}

	req := authedRequest("POST", "/v1/events",
		`{"template_id": 7, "title": "Special Orientation", "capacity": 15, "start_time": "2026-09-01T18:00:00Z"}`, 1, "admin")
	rec := httptest.NewRecorder()
	app.EventsCreate(rec, req)
	assertStatus(t, rec, 201)

	var got eventDTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Title != "Special Orientation" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Capacity == nil || *got.Capacity != 15 {
		t.Fatalf("capacity = %v, want 15", got.Capacity)
	}
}

func TestEventsCreateUnknownTemplate(t *testing.T) {
	app := newTestApp()
	app.Templates = &fakeTemplateRepo{templates: map[int64]*domain.EventTemplate{}}
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{}}

	req := authedRequest("POST", "/v1/events",
		`{"template_id": 99, "start_time": "2026-09-01T18:00:00Z"}`, 1, "admin")
	rec := httptest.NewRecorder()
	app.EventsCreate(rec, req)
	assertStatus(t, rec, 404)
}

func TestEventsUpdatePartial(t *testing.T) {
	app := newTestApp()
	events := &fakeEventRepo{events: map[int64]*domain.Event{5: eventFixture(5, nil, nil)}}
	app.Events = events

	req := authedRequest("PATCH", "/v1/events/5",
		`{"location": "Annex B", "capacity": 25}`, 1, "admin")
	rec := httptest.NewRecorder()
	app.EventsUpdate(rec, withPathID(req, 5))
	assertStatus(t, rec, 200)

	stored := events.events[5]
	if stored.Title != "Volunteer Training" {
		t.Fatalf("title changed to %q", stored.Title)
	}
	if stored.Location != "Annex B" {
		t.Fatalf("location = %q", stored.Location)
	}
	if stored.Capacity == nil || *stored.Capacity != 25 {
		t.Fatalf("capacity = %v, want 25", stored.Capacity)
	}
}

func TestEventsUpdateRejectsBadTimes(t *testing.T) {
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{5: eventFixture(5, nil, nil)}}

	req := authedRequest("PATCH", "/v1/events/5",
		`{"start_time": "tomorrow"}`, 1, "admin")
	rec := httptest.NewRecorder()
	app.EventsUpdate(rec, withPathID(req, 5))
	assertStatus(t, rec, 400)
}

func TestEventsUpdateUnknownEvent(t *testing.T) {
	app := newTestApp()
	app.Events = &fakeEventRepo{events: map[int64]*domain.Event{}}

	req := authedRequest("PATCH", "/v1/events/5", `{"location": "Annex B"}`, 1, "admin")
	rec := httptest.NewRecorder()
	app.EventsUpdate(rec, withPathID(req, 5))
	assertStatus(t, rec, 404)
}
