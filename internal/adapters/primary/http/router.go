package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/guipratiko/onlyhelper-back/internal/adapters/primary/http/middleware"
	"github.com/guipratiko/onlyhelper-back/internal/infrastructure/metrics"
)

// maxBodyBytes bounds request bodies; it leaves room for the inline
// image attachments plus their base64 overhead.
const maxBodyBytes = 10 << 20

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Logger         *slog.Logger
	Auth           *middleware.AuthMiddleware
	AllowedOrigins []string

	Tickets   *TicketHandler
	Messages  *MessageHandler
	Accounts  *AuthHandler
	Me        *MeHandler
	Subjects  *SubjectHandler
	Admin     *AdminHandler
	Health    *HealthHandler
	WebSocket *WebSocketHandler
}

// NewRouter builds the chi router with the full API surface.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(bodyLimit)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	apiLimiter := middleware.NewRateLimiter(rate.Limit(50), 100)
	authLimiter := middleware.NewRateLimiter(rate.Limit(1), 5)

	r.Get("/health", deps.Health.Live)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/ws", deps.WebSocket.Serve)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/auth/register", deps.Accounts.Register)
			r.Post("/auth/login", deps.Accounts.Login)
		})

		r.Get("/subjects", deps.Subjects.ListActive)

		r.Route("/tickets", func(r chi.Router) {
			r.Post("/", deps.Tickets.Create)
			r.Get("/by-session/{sessionID}", deps.Tickets.BySession)

			r.Group(func(r chi.Router) {
				r.Use(deps.Auth.OptionalAuth)
				r.Get("/{ticketID}/messages", deps.Messages.List)
				r.Post("/{ticketID}/messages", deps.Messages.Append)
			})

			r.Group(func(r chi.Router) {
				r.Use(deps.Auth.RequireAuth)
				r.Get("/", deps.Tickets.List)
				r.Patch("/{ticketID}", deps.Tickets.Update)
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(deps.Auth.RequireAuth)
			r.Get("/", deps.Me.Get)
			r.Patch("/status", deps.Me.UpdateStatus)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.Auth.RequireAuth)
			r.Use(deps.Auth.RequireAdmin)

			r.Get("/subjects", deps.Subjects.ListAll)
			r.Post("/subjects", deps.Subjects.Create)
			r.Patch("/subjects/{subjectID}", deps.Subjects.Update)
			r.Delete("/subjects/{subjectID}", deps.Subjects.Delete)

			r.Get("/collaborators", deps.Admin.ListCollaborators)
			r.Patch("/collaborators/{userID}/subjects", deps.Admin.AssignSubjects)
		})
	})

	return r
}

func bodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
