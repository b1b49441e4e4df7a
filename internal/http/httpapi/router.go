package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"crowdfund/internal/http/handlers"
	"crowdfund/internal/middleware"
)

// Options carries the router's cross-cutting configuration.
type Options struct {
	JWTSecret       string
	RateLimitPerMin int
	AllowedOrigins  []string
	Metrics         http.Handler
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Get("/{id}", app.CampaignsGet)
		r.Get("/{id}/donations", app.DonationsList)

		// State transitions require a proven actor identity.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret))
			r.Post("/", app.CampaignsCreate)
			r.Post("/{id}/donations", app.DonationsCreate)
			r.Post("/{id}/withdraw", app.CampaignsWithdraw)
			r.Post("/{id}/refunds", app.RefundsCreate)
			r.Delete("/{id}", app.CampaignsDelete)
		})
	})

	return r
}
