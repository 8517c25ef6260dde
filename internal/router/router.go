package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"tempora-backend/internal/handlers"
	"tempora-backend/internal/middleware"
	"tempora-backend/internal/websocket"
)

func New(
	taskHandler *handlers.TaskHandler,
	timerHandler *handlers.TimerHandler,
	activityLogHandler *handlers.ActivityLogHandler,
	statsHandler *handlers.StatsHandler,
	timeTreeHandler *handlers.TimeTreeHandler,
	profileHandler *handlers.ProfileHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// API rate limiter (120 req/min per IP)
	apiLimiter := middleware.NewRateLimiter(120, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		// ──── Task Routes ────
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		// ──── Timer Routes ────
		r.Route("/timer", func(r chi.Router) {
			r.Get("/active", timerHandler.Active)
			r.Post("/start", timerHandler.Start)
			r.Post("/{id}/pause", timerHandler.Pause)
			r.Post("/{id}/resume", timerHandler.Resume)
			r.Post("/{id}/stop", timerHandler.Stop)
			r.Get("/events", wsHub.HandleWebSocket)
		})

		// ──── Activity Log Routes ────
		r.Route("/activity-logs", func(r chi.Router) {
			r.Get("/", activityLogHandler.Query)
			r.Post("/", activityLogHandler.Create)
			r.Get("/{id}", activityLogHandler.Get)
			r.Put("/{id}", activityLogHandler.Update)
			r.Delete("/{id}", activityLogHandler.Delete)
		})

		// ──── Stats Routes ────
		r.Route("/stats", func(r chi.Router) {
			r.Get("/", statsHandler.Get)
			r.Get("/by-source", statsHandler.BySource)
		})

		// ──── TimeTree Routes ────
		r.Route("/timetree", func(r chi.Router) {
			r.Get("/daily", timeTreeHandler.Daily)
			r.Get("/weekly", timeTreeHandler.Weekly)
			r.Get("/monthly", timeTreeHandler.Monthly)
		})

		// ──── Profile Routes ────
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Put)
		})
	})

	return r
}
