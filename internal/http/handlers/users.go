package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/middleware"
)

type userDTO struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	DateOfBirth    *string   `json:"date_of_birth,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Location       string    `json:"location,omitempty"`
	Affiliation    string    `json:"affiliation,omitempty"`
	Interest       string    `json:"interest,omitempty"`
	TotalDonations string    `json:"total_donations"`
	LoginCount     int       `json:"login_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func toUserDTO(u *domain.User) userDTO {
	dto := userDTO{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		Phone:          u.Phone,
		Location:       u.Location,
		Affiliation:    u.Affiliation,
		Interest:       u.Interest,
		TotalDonations: u.TotalDonations.StringFixed(2),
		LoginCount:     u.LoginCount,
		CreatedAt:      u.CreatedAt,
	}
	if u.DateOfBirth != nil {
		s := u.DateOfBirth.Format("2006-01-02")
		dto.DateOfBirth = &s
	}
	return dto
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// canAccessUser allows admins to act on any account and participants only on
// their own.
func canAccessUser(r *http.Request, userID int64) bool {
	if middleware.RoleFromContext(r.Context()) == "admin" {
		return true
	}
	return middleware.UserIDFromContext(r.Context()) == userID
}

func (a *App) UsersList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	users, err := a.Users.List(r.Context(), limit, offset)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]userDTO, 0, len(users))
	for i := range users {
		items = append(items, toUserDTO(&users[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) UsersGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	if !canAccessUser(r, id) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot access another account")
		return
	}
	user, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

type userUpdateRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"date_of_birth"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Affiliation *string `json:"affiliation"`
	Interest    *string `json:"interest"`
}

func (a *App) UsersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	if !canAccessUser(r, id) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot modify another account")
		return
	}

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	update := domain.ProfileUpdate{
		Name:        req.Name,
		Phone:       req.Phone,
		Location:    req.Location,
		Affiliation: req.Affiliation,
		Interest:    req.Interest,
	}
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "date_of_birth must be YYYY-MM-DD")
			return
		}
		update.DateOfBirth = &parsed
	}

	if err := a.Users.UpdateProfile(r.Context(), id, update); err != nil {
		a.domainError(w, err)
		return
	}
	user, err := a.Users.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserDTO(user))
}

// UsersDelete removes an account. Registrations, enrollments, awards and
// surveys go with it; donations stay behind with a cleared owner.
func (a *App) UsersDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	if err := a.Users.Delete(r.Context(), id); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
