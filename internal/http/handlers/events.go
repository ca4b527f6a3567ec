package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/domain"
)

type templateRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	DefaultCapacity *int   `json:"default_capacity"`
}

type templateDTO struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Location        string    `json:"location,omitempty"`
	DefaultCapacity *int      `json:"default_capacity,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toTemplateDTO(t *domain.EventTemplate) templateDTO {
	return templateDTO{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Location:        t.Location,
		DefaultCapacity: t.DefaultCapacity,
		CreatedAt:       t.CreatedAt,
	}
}

func (a *App) TemplatesCreate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title required")
		return
	}
	tpl := &domain.EventTemplate{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		DefaultCapacity: req.DefaultCapacity,
	}
	if err := a.Templates.Create(r.Context(), tpl); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toTemplateDTO(tpl))
}

func (a *App) TemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Templates.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]templateDTO, 0, len(templates))
	for i := range templates {
		items = append(items, toTemplateDTO(&templates[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// TemplatesDelete removes a template. Events created from it keep running;
// their template reference is cleared.
func (a *App) TemplatesDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid template id")
		return
	}
	if err := a.Templates.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type eventRequest struct {
	TemplateID           *int64  `json:"template_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Location             string  `json:"location"`
	StartTime            string  `json:"start_time"`
	EndTime              *string `json:"end_time"`
	Capacity             *int    `json:"capacity"`
	RegistrationDeadline *string `json:"registration_deadline"`
}

type eventDTO struct {
	ID                   int64      `json:"id"`
	TemplateID           *int64     `json:"template_id,omitempty"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Location             string     `json:"location,omitempty"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              *time.Time `json:"end_time,omitempty"`
	Capacity             *int       `json:"capacity,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func toEventDTO(e *domain.Event) eventDTO {
	return eventDTO{
		ID:                   e.ID,
		TemplateID:           e.TemplateID,
		Title:                e.Title,
		Description:          e.Description,
		Location:             e.Location,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		Capacity:             e.Capacity,
		RegistrationDeadline: e.RegistrationDeadline,
		CreatedAt:            e.CreatedAt,
	}
}

func parseTimePtr(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

// EventsCreate schedules an event. When a template is referenced, its title,
// location and default capacity fill any fields the request leaves blank.
func (a *App) EventsCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	event := &domain.Event{
		TemplateID:  req.TemplateID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
	}

	if req.TemplateID != nil {
		tpl, err := a.Templates.GetByID(r.Context(), *req.TemplateID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		if event.Title == "" {
			event.Title = tpl.Title
		}
		if event.Description == "" {
			event.Description = tpl.Description
		}
		if event.Location == "" {
			event.Location = tpl.Location
		}
		if event.Capacity == nil {
			event.Capacity = tpl.DefaultCapacity
		}
	}
	if event.Title == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title required")
		return
	}

	if req.StartTime == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "start_time required")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "start_time must be RFC 3339")
		return
	}
	event.StartTime = start

	end, ok := parseTimePtr(req.EndTime)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "end_time must be RFC 3339")
		return
	}
	event.EndTime = end

	deadline, ok := parseTimePtr(req.RegistrationDeadline)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "registration_deadline must be RFC 3339")
		return
	}
	event.RegistrationDeadline = deadline

	if err := a.Events.Create(r.Context(), event); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toEventDTO(event))
}

func (a *App) EventsList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	events, err := a.Events.List(r.Context(), limit, offset)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]eventDTO, 0, len(events))
	for i := range events {
		items = append(items, toEventDTO(&events[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type eventUpdateRequest struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Location             *string `json:"location"`
	StartTime            *string `json:"start_time"`
	EndTime              *string `json:"end_time"`
	Capacity             *int    `json:"capacity"`
	RegistrationDeadline *string `json:"registration_deadline"`
}

// EventsUpdate applies a partial edit to a scheduled event. Absent fields
// keep their stored values.
func (a *App) EventsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	var req eventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	event, err := a.Events.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			a.error(w, http.StatusBadRequest, "bad_request", "title cannot be empty")
			return
		}
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "start_time must be RFC 3339")
			return
		}
		event.StartTime = start
	}
	if req.EndTime != nil {
		end, ok := parseTimePtr(req.EndTime)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "end_time must be RFC 3339")
			return
		}
		event.EndTime = end
	}
	if req.RegistrationDeadline != nil {
		deadline, ok := parseTimePtr(req.RegistrationDeadline)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "registration_deadline must be RFC 3339")
			return
		}
		event.RegistrationDeadline = deadline
	}

	if err := a.Events.Update(r.Context(), event); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toEventDTO(event))
}

func (a *App) EventsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	event, err := a.Events.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toEventDTO(event))
}

// EventsDelete removes an event together with its registrations and surveys.
func (a *App) EventsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	if err := a.Events.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
