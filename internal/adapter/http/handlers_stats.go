package adapthttp

import (
	"net/http"

	"moodfit/internal/domain"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats := s.stats.Stats(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats, "disciplineLevel": domain.LevelFor(stats.DisciplineScore)})
}

func (s *Server) handleStatsRebuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats := s.stats.Rebuild(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats, "disciplineLevel": domain.LevelFor(stats.DisciplineScore)})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.Report(r.Context()))
}

func (s *Server) handleDataReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.data.Reset(r.Context()) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"reset": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}
