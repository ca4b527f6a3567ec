package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

// App bundles the dependencies handlers need. Repositories are interfaces so
// tests can swap in fakes.
type App struct {
	Users         domain.UserRepository
	Templates     domain.EventTemplateRepository
	Events        domain.EventRepository
	Registrations domain.RegistrationRepository
	Surveys       domain.SurveyRepository
	Milestones    domain.MilestoneRepository
	Programs      domain.ProgramRepository
	Donations     domain.DonationRepository

	SQL        infra.SQLExecutor
	Logger     zerolog.Logger
	Hasher     domain.PasswordHasher
	JWTSecret  string
	SessionTTL time.Duration
}

func NewApp(pool *pgxpool.Pool, logger zerolog.Logger, cfg *infra.Config) *App {
	return &App{
		Users:         repo.NewUserRepository(pool),
		Templates:     repo.NewEventTemplateRepository(pool),
		Events:        repo.NewEventRepository(pool),
		Registrations: repo.NewRegistrationRepository(pool),
		Surveys:       repo.NewSurveyRepository(pool),
		Milestones:    repo.NewMilestoneRepository(pool),
		Programs:      repo.NewProgramRepository(pool),
		Donations:     repo.NewDonationRepository(pool),
		SQL:           infra.NewSQLRunner(pool, logger),
		Logger:        logger,
		Hasher:        infra.NewBcryptHasher(),
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
