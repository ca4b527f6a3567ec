package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
)

type programDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toProgramDTO(p *domain.Program) programDTO {
	return programDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
	}
}

func (a *App) ProgramsCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title required")
		return
	}

	p := &domain.Program{Title: req.Title, Description: req.Description}
	for _, f := range []struct {
		raw  *string
		dest **time.Time
	}{{req.StartDate, &p.StartDate}, {req.EndDate, &p.EndDate}} {
		if f.raw == nil || *f.raw == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", *f.raw)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "dates must be YYYY-MM-DD")
			return
		}
		*f.dest = &parsed
	}

	if err := a.Programs.Create(r.Context(), p); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toProgramDTO(p))
}

func (a *App) ProgramsList(w http.ResponseWriter, r *http.Request) {
	programs, err := a.Programs.List(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]programDTO, 0, len(programs))
	for i := range programs {
		items = append(items, toProgramDTO(&programs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ProgramsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid program id")
		return
	}
	p, err := a.Programs.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toProgramDTO(p))
}

// ProgramsDelete removes a program and all enrollments in it.
func (a *App) ProgramsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid program id")
		return
	}
	if err := a.Programs.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type enrollmentDTO struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ProgramID  int64     `json:"program_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func toEnrollmentDTO(e *domain.ProgramEnrollment) enrollmentDTO {
	return enrollmentDTO{ID: e.ID, UserID: e.UserID, ProgramID: e.ProgramID, Status: string(e.Status), EnrolledAt: e.EnrolledAt}
}

// ProgramsEnroll enrolls the authenticated user. A second enrollment in the
// same program is rejected as a conflict.
func (a *App) ProgramsEnroll(w http.ResponseWriter, r *http.Request) {
	programID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid program id")
		return
	}
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	enrollment := &domain.ProgramEnrollment{UserID: userID, ProgramID: programID}
	if err := a.Programs.Enroll(r.Context(), enrollment); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toEnrollmentDTO(enrollment))
}

func (a *App) EnrollmentsUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid enrollment id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := domain.EnrollmentStatus(req.Status)
	switch status {
	case domain.EnrollmentActive, domain.EnrollmentCompleted, domain.EnrollmentWithdrawn:
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "status must be active, completed or withdrawn")
		return
	}
	if err := a.Programs.UpdateEnrollmentStatus(r.Context(), id, status); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) EnrollmentsListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	if !canAccessUser(r, userID) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot access another account")
		return
	}
	enrollments, err := a.Programs.ListEnrollmentsByUser(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]enrollmentDTO, 0, len(enrollments))
	for i := range enrollments {
		items = append(items, toEnrollmentDTO(&enrollments[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
