package adapthttp

import (
	"net/http"

	"moodfit/internal/domain"
)

func (s *Server) handleMoodLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Mood      domain.Mood `json:"mood"`
		Intensity int         `json:"intensity"`
		WorkoutID string      `json:"workoutId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.moods.Log(r.Context(), body.Mood, body.Intensity, body.WorkoutID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleMoodCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"current": s.moods.CurrentMood(r.Context())})
}

func (s *Server) handleMoodEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := intQuery(r, "limit", 50)
	entries := s.moods.Entries(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"total": len(entries), "items": newestFirst(entries, limit)})
}
