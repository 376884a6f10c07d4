package http

import (
	"log/slog"
	"os"

	"github.com/attendhub/attend-backend-go/internal/config"
	"github.com/attendhub/attend-backend-go/internal/handler/http/middleware"
	"github.com/attendhub/attend-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, JWTService jwt.Service, authHandler AuthHandler, leaveHandler LeaveHandler, overtimeHandler OvertimeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendhub"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", leaveHandler.ListTypes)
				r.Post("/", leaveHandler.Create)
				r.Get("/my", leaveHandler.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/pending", leaveHandler.ListPending)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.Get)
					r.Post("/decision", leaveHandler.Decide)
					r.Post("/cancel", leaveHandler.Cancel)
					r.Delete("/", leaveHandler.Delete)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Post("/", overtimeHandler.Create)
				r.Get("/my", overtimeHandler.GetMyRequests)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/pending", overtimeHandler.ListPending)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", overtimeHandler.Get)
					r.Put("/", overtimeHandler.Update)
					r.Post("/decision", overtimeHandler.Decide)
					r.Post("/cancel", overtimeHandler.Cancel)
					r.Delete("/", overtimeHandler.Delete)
				})
			})
		})
	})
	return r
}
