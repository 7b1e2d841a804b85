package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/http/handlers"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/infra"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/middleware"
)

// NewRouter wires the API surface: public auth/waitlist routes behind a
// per-IP rate limit, protected routes behind the bearer-token gate, and
// the signature-verified Stripe webhook.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Logger(logger),
	)

	requireUser := middleware.RequireUser([]byte(cfg.JWTSecret), app.Users.GetByEmail)
	publicLimit := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(publicLimit).Post("/signup", app.Signup)
			r.With(publicLimit).Post("/login", app.Login)
			r.With(requireUser).Get("/me", app.Me)
			r.With(requireUser).Get("/access-check", app.AccessCheck)
		})

		r.With(publicLimit).Post("/beta-signup", app.BetaSignup)
		// Admin-facing listing; intentionally matches the current
		// product behavior of having no auth gate here.
		r.Get("/beta-signups", app.BetaSignupList)

		r.Route("/reflections", func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/increment-free-usage", app.IncrementFreeUsage)
		})

		r.Route("/payments", func(r chi.Router) {
			r.With(requireUser).Post("/create-checkout", app.CreateCheckout)
			r.With(requireUser).Get("/checkout-status/{sessionId}", app.CheckoutStatus)
			r.Post("/webhook/stripe", app.StripeWebhook)
		})
	})

	return r
}
