package domain

import "time"

// WorkoutSession is the record of one attempt at a catalog workout.
//
// A session is open while Completed is false and EndTime is nil. Abandoned
// marks an open session that was closed without finishing; it counts as
// neither a completion nor a failure.
type WorkoutSession struct {
	ID                 string     `json:"id"`
	WorkoutID          string     `json:"workoutId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            *time.Time `json:"endTime,omitempty"`
	Completed          bool       `json:"completed"`
	Abandoned          bool       `json:"abandoned,omitempty"`
	MoodBefore         *MoodEntry `json:"moodBefore,omitempty"`
	MoodAfter          *MoodEntry `json:"moodAfter,omitempty"`
	ExercisesCompleted []string   `json:"exercisesCompleted"`
}

// RecordID implements eventstore.Record.
func (s *WorkoutSession) RecordID() string { return s.ID }

// SetRecordID implements eventstore.Record.
func (s *WorkoutSession) SetRecordID(id string) { s.ID = id }

// Open reports whether the session is still in progress.
func (s WorkoutSession) Open() bool {
	return !s.Completed && s.EndTime == nil
}
