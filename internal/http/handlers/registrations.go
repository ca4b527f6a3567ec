package handlers

import (
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
)

type registrationDTO struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	EventID      int64     `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toRegistrationDTO(reg *domain.EventRegistration) registrationDTO {
	return registrationDTO{ID: reg.ID, UserID: reg.UserID, EventID: reg.EventID, RegisteredAt: reg.RegisteredAt}
}

// Register signs the authenticated user up for an event. Deadline and
// capacity are route-level checks; a concurrent overshoot past capacity is
// accepted rather than blocked by the schema.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	event, err := a.Events.GetByID(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if event.RegistrationDeadline != nil && time.Now().After(*event.RegistrationDeadline) {
		a.error(w, http.StatusUnprocessableEntity, "deadline_passed", "registration deadline has passed")
		return
	}
	if event.Capacity != nil {
		count, err := a.Registrations.CountByEvent(r.Context(), eventID)
		if err != nil {
			a.domainError(w, err)
			return
		}
		if count >= *event.Capacity {
			a.error(w, http.StatusConflict, "event_full", "event has reached capacity")
			return
		}
	}

	reg := &domain.EventRegistration{UserID: userID, EventID: eventID}
	if err := a.Registrations.Create(r.Context(), reg); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toRegistrationDTO(reg))
}

func (a *App) RegistrationsListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	regs, err := a.Registrations.ListByEvent(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]registrationDTO, 0, len(regs))
	for i := range regs {
		items = append(items, toRegistrationDTO(&regs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// RegistrationsCancel deletes a registration. Participants may cancel their
// own; admins may cancel any.
func (a *App) RegistrationsCancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid registration id")
		return
	}
	reg, err := a.Registrations.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if !canAccessUser(r, reg.UserID) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot cancel another participant's registration")
		return
	}
	if err := a.Registrations.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
