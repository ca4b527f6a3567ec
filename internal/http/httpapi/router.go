package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	mw "server/internal/middleware"
)

// NewRouter wires the HTTP surface. Auth and role checks live here; handlers
// only enforce ownership rules that need the loaded resource.
func NewRouter(app *handlers.App, logger zerolog.Logger, cfg *infra.Config, lookup mw.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		mw.RequestID,
		mw.Logger(logger),
		mw.CORS(cfg.CORSOrigins),
		mw.RateLimit(cfg.RateLimitPerMin, time.Minute),
		mw.Locale(cfg.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/v1/auth/signup", app.Signup)
	r.Post("/v1/auth/login", app.Login)

	// Browsable catalog.
	r.Get("/v1/events", app.EventsList)
	r.Get("/v1/events/{id}", app.EventsGet)
	r.Get("/v1/programs", app.ProgramsList)
	r.Get("/v1/programs/{id}", app.ProgramsGet)
	r.Get("/v1/milestones", app.MilestonesList)

	// Any authenticated user.
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthJWT(app.JWTSecret))

		r.Get("/v1/me", app.Me)
		r.Get("/v1/users/{id}", app.UsersGet)
		r.Patch("/v1/users/{id}", app.UsersUpdate)
		r.Get("/v1/users/{id}/donations", app.UserDonationsList)
		r.Get("/v1/users/{id}/milestones", app.MilestonesListByUser)
		r.Get("/v1/users/{id}/enrollments", app.EnrollmentsListByUser)

		r.Post("/v1/events/{id}/registrations", app.Register)
		r.Delete("/v1/registrations/{id}", app.RegistrationsCancel)
		r.Post("/v1/events/{id}/surveys", app.SurveysCreate)
		r.Post("/v1/programs/{id}/enrollments", app.ProgramsEnroll)
	})

	// Administrative surface.
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthJWT(app.JWTSecret), mw.RequireAdmin)

		r.Get("/v1/users", app.UsersList)
		r.Delete("/v1/users/{id}", app.UsersDelete)

		r.Post("/v1/event-templates", app.TemplatesCreate)
		r.Get("/v1/event-templates", app.TemplatesList)
		r.Delete("/v1/event-templates/{id}", app.TemplatesDelete)

		r.Post("/v1/events", app.EventsCreate)
		r.Patch("/v1/events/{id}", app.EventsUpdate)
		r.Delete("/v1/events/{id}", app.EventsDelete)
		r.Get("/v1/events/{id}/registrations", app.RegistrationsListByEvent)
		r.Get("/v1/events/{id}/surveys", app.SurveysListByEvent)

		r.Post("/v1/programs", app.ProgramsCreate)
		r.Delete("/v1/programs/{id}", app.ProgramsDelete)
		r.Patch("/v1/enrollments/{id}", app.EnrollmentsUpdateStatus)

		r.Post("/v1/milestones", app.MilestonesCreate)
		r.Post("/v1/users/{id}/milestones", app.MilestonesAward)
		r.Delete("/v1/milestone-awards/{id}", app.MilestonesDeleteAward)

		r.Post("/v1/donations", app.DonationsCreate)
		r.Get("/v1/donations", app.DonationsList)
		r.Patch("/v1/donations/{id}", app.DonationsAmend)
		r.Delete("/v1/donations/{id}", app.DonationsRemove)

		r.Get("/v1/stats/summary", app.StatsSummary)
		r.Get("/v1/exports/donations.zip", app.ExportDonations)
	})

	return r
}
