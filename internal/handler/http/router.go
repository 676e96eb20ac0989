package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/handler/http/middleware"
	"github.com/didacticiel/Gpresence/internal/handler/http/response"
	"github.com/didacticiel/Gpresence/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	// Logger receives the request logs. Defaults to ECS JSON on stdout.
	Logger *slog.Logger
}

type Handlers struct {
	Auth     AuthHandler
	Presence PresenceHandler
	Employee EmployeeHandler
	Report   ReportHandler
}

func requestLogger(opts RouterOptions) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gpresence-devapi"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(requestLogger(opts), &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {

		r.Route("/users", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/presences", func(r chi.Router) {
				r.With(middleware.RequireAnyPermission(
					user.PermissionPresenceViewAll,
					user.PermissionPresenceViewOwn,
				)).Get("/", h.Presence.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPresenceManage))
					r.Post("/{id}/arrivee", h.Presence.CheckIn)
					r.Post("/{id}/sortie", h.Presence.CheckOut)
				})
			})

			r.Route("/ma-presence", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPresenceSelfService))
				r.Get("/", h.Presence.GetOwn)
				r.Post("/", h.Presence.CreateOwn)
				r.Post("/arrivee", h.Presence.CheckInOwn)
				r.Post("/sortie", h.Presence.CheckOutOwn)
			})

			r.Route("/employes", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeViewAll)).Get("/", h.Employee.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/rapports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/", h.Report.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsManage))
					r.Post("/", h.Report.Create)
					r.Delete("/{id}", h.Report.Delete)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found")
	})
	return r
}
