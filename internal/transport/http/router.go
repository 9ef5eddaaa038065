package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/shike-app/auth-api/internal/application/auth"
	"github.com/shike-app/auth-api/internal/config"
	"github.com/shike-app/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/shike-app/auth-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second with a burst of 10 on the public credential
	// endpoints, so codes and passwords cannot be guessed at line rate.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:  deps.UserRepo,
		CodeStore: deps.CodeStore,
		Mailer:    deps.Mailer,
		Tokens:    deps.JWTProvider,
		CodeTTL:   cfg.CodeTTL,
	})

	authH := handler.NewAuthHandler(authSvc)
	pwH := handler.NewPasswordRecoveryHandler(authSvc, cfg.Development())

	r.Get("/", handler.Health)
	r.Get("/health-check", handler.Health)

	r.Route("/auth", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/forgot-password/send-code", pwH.SendCode)
		r.With(sensitiveRL.Limit).Post("/forgot-password/verify-code", pwH.VerifyCode)
		r.With(sensitiveRL.Limit).Post("/forgot-password/reset", pwH.Reset)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))
			r.Get("/me", authH.Me)
		})
	})

	return r
}
