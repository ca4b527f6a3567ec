package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// SurveyRepositoryPG implements domain.SurveyRepository.
type SurveyRepositoryPG struct {
	pool *pgxpool.Pool
}

func NewSurveyRepository(pool *pgxpool.Pool) *SurveyRepositoryPG {
	return &SurveyRepositoryPG{pool: pool}
}

// Create stores post-event feedback. Ratings outside 1..5 and unknown
// net promoter classifications fail the schema's CHECK constraints and
// surface as ErrConstraintViolation. The overall score arrives precomputed by
// the caller; the store never derives it.
func (r *SurveyRepositoryPG) Create(ctx context.Context, survey *domain.Survey) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO surveys (user_id, event_id, registration_id, satisfaction_rating, usefulness_rating,
                     instructor_rating, recommendation_rating, net_promoter_score, comments, overall_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
RETURNING id, created_at;
`, survey.UserID, survey.EventID, survey.RegistrationID,
		survey.SatisfactionRating, survey.UsefulnessRating, survey.InstructorRating, survey.RecommendationRating,
		survey.NetPromoterScore, survey.Comments, survey.OverallScore)
	if err := row.Scan(&survey.ID, &survey.CreatedAt); err != nil {
		return mapPGError(err)
	}
	return nil
}

func (r *SurveyRepositoryPG) ListByEvent(ctx context.Context, eventID int64) ([]domain.Survey, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, event_id, registration_id, satisfaction_rating, usefulness_rating,
       instructor_rating, recommendation_rating, net_promoter_score, comments, overall_score, created_at
FROM surveys
WHERE event_id = $1
ORDER BY created_at;
`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanSurvey(row pgx.Row) (*domain.Survey, error) {
	var s domain.Survey
	var comments *string
	if err := row.Scan(&s.ID, &s.UserID, &s.EventID, &s.RegistrationID,
		&s.SatisfactionRating, &s.UsefulnessRating, &s.InstructorRating, &s.RecommendationRating,
		&s.NetPromoterScore, &comments, &s.OverallScore, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.Comments = deref(comments)
	return &s, nil
}
