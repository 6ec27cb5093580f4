package adapthttp

import (
	"net/http"

	"moodfit/internal/domain"
)

func (s *Server) handleFailures(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", 50)
		entries := s.failures.List(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"total": len(entries), "items": newestFirst(entries, limit)})
	case http.MethodPost:
		var body struct {
			Category           domain.FailureCategory `json:"category"`
			Notes              string                 `json:"notes"`
			ScheduledWorkoutID string                 `json:"scheduledWorkoutId"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := s.failures.Log(r.Context(), body.Category, body.Notes, body.ScheduledWorkoutID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"entry": entry,
			"tip":   entry.Category.Info().Tip,
			"stats": s.stats.Stats(r.Context()),
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
