package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sea-catering/backend/api/controllers"
	"github.com/sea-catering/backend/api/middleware"
	"github.com/sea-catering/backend/internal/auth"
	"github.com/sea-catering/backend/internal/catalog"
	"github.com/sea-catering/backend/internal/subscriptions"
	"github.com/sea-catering/backend/internal/testimonials"
	"github.com/sea-catering/backend/pkg/config"
	"github.com/sea-catering/backend/pkg/db"
	"github.com/sea-catering/backend/pkg/enums"
	"github.com/sea-catering/backend/pkg/logger"
	"github.com/sea-catering/backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: public catalog and testimonial
// reads, rate-limited auth, authenticated subscription management, and the
// admin dashboard endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	authService auth.Service,
	catalogService catalog.Service,
	subscriptionService subscriptions.Service,
	testimonialService testimonials.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	authPolicy := middleware.NewRateLimitPolicy("auth", cfg.RateLimit.AuthWindow, cfg.RateLimit.AuthIPLimit)
	intakePolicy := middleware.NewRateLimitPolicy("intake", cfg.RateLimit.IntakeWindow, cfg.RateLimit.IntakeIPLimit)
	testimonyPolicy := middleware.NewRateLimitPolicy("testimony", cfg.RateLimit.TestimonyWindow, cfg.RateLimit.TestimonyIPLimit)

	// A typed-nil *db.Client or *redis.Client must not reach HealthReady as a
	// non-nil interface.
	var dbPinger, cachePinger db.Pinger
	if database != nil {
		dbPinger = database
	}
	if redisClient != nil {
		cachePinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, cachePinger, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", controllers.CatalogPlans(catalogService, logg))
		r.Get("/meal-types", controllers.CatalogMealTypes(catalogService, logg))
		r.Get("/delivery-days", controllers.CatalogDeliveryDays(catalogService, logg))
		r.Get("/testimonials", controllers.TestimonialsListApproved(testimonialService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(authPolicy, redisClient, logg))
			r.Post("/register", controllers.AuthRegister(authService, logg))
			r.Post("/login", controllers.AuthLogin(authService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/subscriptions", func(r chi.Router) {
				r.With(middleware.RateLimit(intakePolicy, redisClient, logg)).
					Post("/", controllers.SubscriptionsCreate(subscriptionService, logg))
				r.Get("/", controllers.SubscriptionsList(subscriptionService, logg))
				r.Get("/{id}", controllers.SubscriptionsGet(subscriptionService, logg))
				r.Patch("/{id}", controllers.SubscriptionsTransition(subscriptionService, logg))
				r.Delete("/{id}", controllers.SubscriptionsDelete(subscriptionService, logg))
			})

			r.With(middleware.RateLimit(testimonyPolicy, redisClient, logg)).
				Post("/testimonials", controllers.TestimonialsCreate(testimonialService, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
				r.Get("/subscriptions", controllers.SubscriptionsList(subscriptionService, logg))
				r.Get("/metrics", controllers.AdminMetrics(subscriptionService, logg))
				r.Get("/testimonials", controllers.TestimonialsListPending(testimonialService, logg))
				r.Patch("/testimonials/{id}", controllers.TestimonialsReview(testimonialService, logg))
			})
		})
	})

	return r
}
