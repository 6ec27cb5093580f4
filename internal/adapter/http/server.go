package adapthttp

import (
	"log/slog"
	"net/http"

	"moodfit/internal/app"
)

// Services bundles the application services the HTTP adapter drives.
type Services struct {
	Moods     *app.MoodService
	Catalog   *app.CatalogService
	Sessions  *app.SessionService
	Failures  *app.FailureService
	Stats     *app.StatsService
	Analytics *app.AnalyticsService
	Data      *app.DataService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	moods     *app.MoodService
	catalog   *app.CatalogService
	sessions  *app.SessionService
	failures  *app.FailureService
	stats     *app.StatsService
	analytics *app.AnalyticsService
	data      *app.DataService
	log       *slog.Logger
}

// New creates a Server wired to the given application services.
func New(svc Services, log *slog.Logger) *Server {
	return &Server{
		moods:     svc.Moods,
		catalog:   svc.Catalog,
		sessions:  svc.Sessions,
		failures:  svc.Failures,
		stats:     svc.Stats,
		analytics: svc.Analytics,
		data:      svc.Data,
		log:       log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/mood", s.handleMoodLog)
	api.HandleFunc("/mood/current", s.handleMoodCurrent)
	api.HandleFunc("/mood/entries", s.handleMoodEntries)

	api.HandleFunc("/workouts", s.handleWorkouts)
	api.HandleFunc("/recommendations", s.handleRecommendations)

	api.HandleFunc("/session", s.handleSessionState)
	api.HandleFunc("/session/start", s.handleSessionStart)
	api.HandleFunc("/session/advance", s.sessionAction(s.sessions.Advance))
	api.HandleFunc("/session/pause", s.sessionAction(s.sessions.Pause))
	api.HandleFunc("/session/resume", s.sessionAction(s.sessions.Resume))
	api.HandleFunc("/session/complete", s.sessionAction(s.sessions.Complete))
	api.HandleFunc("/session/quit", s.handleSessionQuit)

	api.HandleFunc("/failures", s.handleFailures)

	api.HandleFunc("/stats", s.handleStats)
	api.HandleFunc("/stats/rebuild", s.handleStatsRebuild)
	api.HandleFunc("/analytics", s.handleAnalytics)

	api.HandleFunc("/data", s.handleDataReset)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return withNoCache(s.loggingMiddleware(root))
}
