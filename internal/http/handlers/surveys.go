package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"server/internal/domain"
	"server/internal/middleware"
)

type surveyRequest struct {
	RegistrationID       int64  `json:"registration_id"`
	SatisfactionRating   int    `json:"satisfaction_rating"`
	UsefulnessRating     int    `json:"usefulness_rating"`
	InstructorRating     int    `json:"instructor_rating"`
	RecommendationRating int    `json:"recommendation_rating"`
	NetPromoterScore     string `json:"net_promoter_score"`
	Comments             string `json:"comments"`
}

type surveyDTO struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	EventID              int64     `json:"event_id"`
	RegistrationID       int64     `json:"registration_id"`
	SatisfactionRating   int       `json:"satisfaction_rating"`
	UsefulnessRating     int       `json:"usefulness_rating"`
	InstructorRating     int       `json:"instructor_rating"`
	RecommendationRating int       `json:"recommendation_rating"`
	NetPromoterScore     string    `json:"net_promoter_score"`
	Comments             string    `json:"comments,omitempty"`
	OverallScore         string    `json:"overall_score"`
	CreatedAt            time.Time `json:"created_at"`
}

func toSurveyDTO(s *domain.Survey) surveyDTO {
	return surveyDTO{
		ID:                   s.ID,
		UserID:               s.UserID,
		EventID:              s.EventID,
		RegistrationID:       s.RegistrationID,
		SatisfactionRating:   s.SatisfactionRating,
		UsefulnessRating:     s.UsefulnessRating,
		InstructorRating:     s.InstructorRating,
		RecommendationRating: s.RecommendationRating,
		NetPromoterScore:     string(s.NetPromoterScore),
		Comments:             s.Comments,
		OverallScore:         s.OverallScore.StringFixed(2),
		CreatedAt:            s.CreatedAt,
	}
}

// overallScore averages the four ratings to two decimal places.
func overallScore(ratings [4]int) decimal.Decimal {
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(4)).Round(2)
}

// SurveysCreate records post-event feedback from the authenticated user. The
// overall score is derived here; the database stores it as given.
func (a *App) SurveysCreate(w http.ResponseWriter, r *http.Request) {
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

	var req surveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	reg, err := a.Registrations.GetByID(r.Context(), req.RegistrationID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	if reg.UserID != userID || reg.EventID != eventID {
		a.error(w, http.StatusUnprocessableEntity, "invalid_reference", "registration does not match user and event")
		return
	}

	survey := &domain.Survey{
		UserID:               userID,
		EventID:              eventID,
		RegistrationID:       req.RegistrationID,
		SatisfactionRating:   req.SatisfactionRating,
		UsefulnessRating:     req.UsefulnessRating,
		InstructorRating:     req.InstructorRating,
		RecommendationRating: req.RecommendationRating,
		NetPromoterScore:     domain.NetPromoterScore(req.NetPromoterScore),
		Comments:             req.Comments,
	}
	survey.OverallScore = overallScore(survey.Ratings())

	if err := a.Surveys.Create(r.Context(), survey); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toSurveyDTO(survey))
}

func (a *App) SurveysListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid event id")
		return
	}
	surveys, err := a.Surveys.ListByEvent(r.Context(), eventID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]surveyDTO, 0, len(surveys))
	for i := range surveys {
		items = append(items, toSurveyDTO(&surveys[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
