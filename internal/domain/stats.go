package domain

import "math"

// UserStats is the materialized view derived from session and failure events.
type UserStats struct {
	TotalWorkouts   int `json:"totalWorkouts"`
	CurrentStreak   int `json:"currentStreak"`
	LongestStreak   int `json:"longestStreak"`
	DisciplineScore int `json:"disciplineScore"`
	TotalMinutes    int `json:"totalMinutes"`
	MissedWorkouts  int `json:"missedWorkouts"`
}

// DefaultStats is the view of a user with no history.
func DefaultStats() UserStats {
	return UserStats{DisciplineScore: 100}
}

// DisciplineScore is the percentage of intended workouts that were completed,
// rounded half away from zero. With no history it is 100.
func DisciplineScore(completed, missed int) int {
	total := completed + missed
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ApplyCompletion folds one completed workout of the given length into s.
func (s *UserStats) ApplyCompletion(minutes int) {
	s.TotalWorkouts++
	s.CurrentStreak++
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	s.TotalMinutes += max(minutes, 0)
	s.DisciplineScore = DisciplineScore(s.TotalWorkouts, s.MissedWorkouts)
}

// ApplyFailure folds one missed workout into s.
func (s *UserStats) ApplyFailure() {
	s.MissedWorkouts++
	s.CurrentStreak = 0
	s.DisciplineScore = DisciplineScore(s.TotalWorkouts, s.MissedWorkouts)
}

// DisciplineLevel buckets a discipline score for display.
type DisciplineLevel string

const (
	DisciplineHigh   DisciplineLevel = "high"
	DisciplineMedium DisciplineLevel = "medium"
	DisciplineLow    DisciplineLevel = "low"
)

// LevelFor returns the display bucket of score.
func LevelFor(score int) DisciplineLevel {
	switch {
	case score >= 80:
		return DisciplineHigh
	case score >= 50:
		return DisciplineMedium
	default:
		return DisciplineLow
	}
}
