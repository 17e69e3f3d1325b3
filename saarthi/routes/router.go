package routes

import (
	"net/http"
	"time"

	"saarthi/saarthi/config"
	"saarthi/saarthi/controllers"
	"saarthi/saarthi/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Controllers groups everything the router mounts.
type Controllers struct {
	Health     *controllers.HealthController
	Chat       *controllers.ChatController
	Navigation *controllers.NavigationController
	Wake       *controllers.WakeController
	Sessions   *controllers.SessionsController
	Debug      *controllers.DebugController
}

// NewRouter builds the full HTTP surface with its middleware stack.
func NewRouter(cfg config.Config, c Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// websockets live outside the timeout so long sessions are not cut off
	r.Group(func(gr chi.Router) {
		if cfg.MaxConcurrentRequests > 0 {
			gr.Use(middleware.Throttle(cfg.MaxConcurrentRequests))
		}
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		gr.Use(middleware.Timeout(timeout))

		gr.Get("/", c.Health.Banner)
		gr.Mount("/health", HealthRoutes(c.Health))
		gr.Mount("/api/navigation", NavigationRoutes(c.Navigation))
		gr.Mount("/api/llm", ChatRoutes(c.Chat))
		gr.Mount("/api/wake", WakeRoutes(c.Wake))
		gr.Mount("/api/sessions", SessionRoutes(c.Sessions, cfg))
		gr.Mount("/api/debug", DebugRoutes(c.Debug))
	})
	r.Get("/api/llm/ws", ChatSocket(c.Chat))
	r.Get("/api/debug/voice-logs/ws", VoiceLogSocket(c.Debug))
	return r
}
