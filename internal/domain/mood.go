package domain

import (
	"errors"
	"time"
)

// Mood is a self-reported emotional state.
type Mood string

const (
	MoodEnergized Mood = "energized"
	MoodCalm      Mood = "calm"
	MoodTired     Mood = "tired"
	MoodStressed  Mood = "stressed"
	MoodMotivated Mood = "motivated"
)

// Moods lists every mood in canonical order. Aggregations iterate in this
// order, so it also decides ties.
var Moods = []Mood{MoodEnergized, MoodCalm, MoodTired, MoodStressed, MoodMotivated}

var (
	// ErrInvalidMood indicates a mood outside the known set.
	ErrInvalidMood = errors.New("mood must be one of energized, calm, tired, stressed, motivated")
	// ErrInvalidIntensity indicates an intensity outside [1, 5].
	ErrInvalidIntensity = errors.New("intensity must be within [1, 5]")
)

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// MoodEntry is an immutable mood log event.
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      Mood      `json:"mood"`
	Intensity int       `json:"intensity"`
	Timestamp time.Time `json:"timestamp"`
	WorkoutID string    `json:"workoutId,omitempty"`
}

// RecordID implements eventstore.Record.
func (e *MoodEntry) RecordID() string { return e.ID }

// SetRecordID implements eventstore.Record.
func (e *MoodEntry) SetRecordID(id string) { e.ID = id }

// ValidateMood checks a mood/intensity pair before it is logged.
func ValidateMood(m Mood, intensity int) error {
	if !m.Valid() {
		return ErrInvalidMood
	}
	if intensity < 1 || intensity > 5 {
		return ErrInvalidIntensity
	}
	return nil
}
