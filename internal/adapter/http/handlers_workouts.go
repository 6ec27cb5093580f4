package adapthttp

import (
	"net/http"

	"moodfit/internal/domain"
)

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	filter := r.URL.Query().Get("filter")
	items, err := s.catalog.List(r.Context(), filter)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"filter": filter, "items": items})
}

// handleRecommendations matches the catalog against ?mood, or the current
// mood when the parameter is absent.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	mood := domain.Mood(r.URL.Query().Get("mood"))
	if mood == "" {
		current := s.moods.CurrentMood(r.Context())
		if current == nil {
			writeJSON(w, http.StatusOK, map[string]any{"mood": nil, "items": []domain.Workout{}})
			return
		}
		mood = current.Mood
	}
	items, err := s.catalog.RecommendFor(r.Context(), mood)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mood": mood, "items": items})
}
