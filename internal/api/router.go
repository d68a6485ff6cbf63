package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"skillpath/internal/api/handler"
	"skillpath/internal/api/middleware"
	"skillpath/internal/app/service"
	"skillpath/internal/common"
	"skillpath/internal/common/security"
	"skillpath/internal/domain/repository"
	"skillpath/internal/platform/config"
)

func NewRouter(
	cfg *config.Config,
	tokens *security.JWTManager,
	authService *service.AuthService,
	progressService *service.ProgressService,
	revocations repository.RevocationRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Verifies a bearer token when present and puts claims in context.
	// Protected routes then go through middleware.Authenticator.
	r.Use(jwtauth.Verifier(tokens.Auth()))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "Route does not exist")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"data": "This is a full stack app!",
		})
	})

	authenticate := middleware.Authenticator(revocations)

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", func(ar chi.Router) {
			authHandler.RegisterRoutes(ar, authenticate)
		})

		progressHandler := handler.NewProgressHandler(progressService)
		v1.Route("/user", func(ur chi.Router) {
			ur.Use(authenticate)
			progressHandler.RegisterRoutes(ur)
		})
	})

	return r
}
