package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/domain"
)

type milestoneDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *App) MilestonesCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "title required")
		return
	}
	m := &domain.Milestone{Title: req.Title, Description: req.Description}
	if err := a.Milestones.CreateMilestone(r.Context(), m); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, milestoneDTO{ID: m.ID, Title: m.Title, Description: m.Description, CreatedAt: m.CreatedAt})
}

func (a *App) MilestonesList(w http.ResponseWriter, r *http.Request) {
	milestones, err := a.Milestones.ListMilestones(r.Context())
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]milestoneDTO, 0, len(milestones))
	for _, m := range milestones {
		items = append(items, milestoneDTO{ID: m.ID, Title: m.Title, Description: m.Description, CreatedAt: m.CreatedAt})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type awardDTO struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	MilestoneID int64      `json:"milestone_id"`
	CustomTitle *string    `json:"custom_title,omitempty"`
	AchievedAt  *time.Time `json:"achieved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toAwardDTO(pm *domain.ParticipantMilestone) awardDTO {
	return awardDTO{
		ID:          pm.ID,
		UserID:      pm.UserID,
		MilestoneID: pm.MilestoneID,
		CustomTitle: pm.CustomTitle,
		AchievedAt:  pm.AchievedAt,
		CreatedAt:   pm.CreatedAt,
	}
}

// MilestonesAward records an achievement for a user.
func (a *App) MilestonesAward(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	var req struct {
		MilestoneID int64   `json:"milestone_id"`
		CustomTitle *string `json:"custom_title"`
		AchievedAt  *string `json:"achieved_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	award := &domain.ParticipantMilestone{
		UserID:      userID,
		MilestoneID: req.MilestoneID,
		CustomTitle: req.CustomTitle,
	}
	if req.AchievedAt != nil && *req.AchievedAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.AchievedAt)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "achieved_at must be RFC 3339")
			return
		}
		award.AchievedAt = &parsed
	}

	if err := a.Milestones.Award(r.Context(), award); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toAwardDTO(award))
}

func (a *App) MilestonesListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	if !canAccessUser(r, userID) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot access another account")
		return
	}
	awards, err := a.Milestones.ListAwardsByUser(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]awardDTO, 0, len(awards))
	for i := range awards {
		items = append(items, toAwardDTO(&awards[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) MilestonesDeleteAward(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid award id")
		return
	}
	if err := a.Milestones.DeleteAward(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
