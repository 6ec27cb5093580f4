package domain

import (
	"errors"
	"slices"
)

// WorkoutType is the training style of a catalog workout.
type WorkoutType string

const (
	WorkoutStrength    WorkoutType = "strength"
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutHIIT        WorkoutType = "hiit"
	WorkoutRecovery    WorkoutType = "recovery"
)

// WorkoutTypes lists every workout type.
var WorkoutTypes = []WorkoutType{WorkoutStrength, WorkoutCardio, WorkoutFlexibility, WorkoutHIIT, WorkoutRecovery}

// ErrInvalidWorkoutType indicates a workout type outside the known set.
var ErrInvalidWorkoutType = errors.New("type must be one of strength, cardio, flexibility, hiit, recovery")

// Valid reports whether t is a known workout type.
func (t WorkoutType) Valid() bool {
	return slices.Contains(WorkoutTypes, t)
}

// TimingKind tags the variant held by a Timing.
type TimingKind string

const (
	// TimingTimed is an exercise held for a fixed number of seconds.
	TimingTimed TimingKind = "timed"
	// TimingReps is an exercise of sets x reps with a countdown budget.
	TimingReps TimingKind = "reps"
)

// DefaultRepSeconds is the countdown budget given to rep-based exercises
// when none is configured.
const DefaultRepSeconds = 30

// Timing describes how long an exercise runs. Seconds is the duration for
// timed exercises and the countdown budget for rep-based ones.
type Timing struct {
	Kind    TimingKind `json:"kind"`
	Seconds int        `json:"seconds"`
	Sets    int        `json:"sets,omitempty"`
	Reps    int        `json:"reps,omitempty"`
}

// Timed returns a timed variant.
func Timed(seconds int) Timing {
	return Timing{Kind: TimingTimed, Seconds: seconds}
}

// RepBased returns a sets x reps variant with the given countdown budget.
func RepBased(sets, reps, seconds int) Timing {
	return Timing{Kind: TimingReps, Sets: sets, Reps: reps, Seconds: seconds}
}

// CountdownSeconds is the countdown the session controller runs for this
// exercise. It is never below 1.
func (t Timing) CountdownSeconds() int {
	var s int
	switch t.Kind {
	case TimingTimed:
		s = t.Seconds
	case TimingReps:
		s = t.Seconds
		if s <= 0 {
			s = DefaultRepSeconds
		}
	default:
		s = DefaultRepSeconds
	}
	return max(s, 1)
}

// Exercise is one step of a workout.
type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timing   Timing `json:"timing"`
	RestTime int    `json:"restTime"`
}

// Workout is a static catalog entry.
type Workout struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Type             WorkoutType `json:"type"`
	Duration         int         `json:"duration"`
	Exercises        []Exercise  `json:"exercises"`
	MoodBased        bool        `json:"moodBased"`
	RecommendedMoods []Mood      `json:"recommendedMoods"`
}

// RecommendedFor reports whether m is in the workout's recommended set.
func (w Workout) RecommendedFor(m Mood) bool {
	return slices.Contains(w.RecommendedMoods, m)
}

// ExerciseIDs returns the exercise ids in catalog order.
func (w Workout) ExerciseIDs() []string {
	ids := make([]string, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		ids = append(ids, e.ID)
	}
	return ids
}

// DefaultCatalog returns the workouts seeded on first run.
func DefaultCatalog() []Workout {
	return []Workout{
		{
			ID:               "w1",
			Name:             "Morning Energy Boost",
			Type:             WorkoutHIIT,
			Duration:         20,
			MoodBased:        true,
			RecommendedMoods: []Mood{MoodEnergized, MoodMotivated},
			Exercises: []Exercise{
				{ID: "e1", Name: "Jumping Jacks", Timing: Timed(45), RestTime: 15},
				{ID: "e2", Name: "High Knees", Timing: Timed(45), RestTime: 15},
				{ID: "e3", Name: "Burpees", Timing: RepBased(3, 10, DefaultRepSeconds), RestTime: 30},
				{ID: "e4", Name: "Mountain Climbers", Timing: Timed(45), RestTime: 15},
				{ID: "e5", Name: "Squat Jumps", Timing: RepBased(3, 12, DefaultRepSeconds), RestTime: 30},
			},
		},
		{
			ID:               "w2",
			Name:             "Gentle Recovery Flow",
			Type:             WorkoutRecovery,
			Duration:         25,
			MoodBased:        true,
			RecommendedMoods: []Mood{MoodTired, MoodStressed},
			Exercises: []Exercise{
				{ID: "e6", Name: "Cat-Cow Stretch", Timing: Timed(60), RestTime: 10},
				{ID: "e7", Name: "Child Pose", Timing: Timed(90), RestTime: 10},
				{ID: "e8", Name: "Gentle Twist", Timing: Timed(60), RestTime: 10},
				{ID: "e9", Name: "Hip Opener", Timing: Timed(90), RestTime: 10},
				{ID: "e10", Name: "Savasana", Timing: Timed(180), RestTime: 0},
			},
		},
		{
			ID:               "w3",
			Name:             "Strength Foundation",
			Type:             WorkoutStrength,
			Duration:         35,
			MoodBased:        true,
			RecommendedMoods: []Mood{MoodMotivated, MoodEnergized, MoodCalm},
			Exercises: []Exercise{
				{ID: "e11", Name: "Push-ups", Timing: RepBased(3, 12, DefaultRepSeconds), RestTime: 45},
				{ID: "e12", Name: "Bodyweight Squats", Timing: RepBased(3, 15, DefaultRepSeconds), RestTime: 45},
				{ID: "e13", Name: "Plank Hold", Timing: Timed(45), RestTime: 30},
				{ID: "e14", Name: "Lunges", Timing: RepBased(3, 10, DefaultRepSeconds), RestTime: 45},
				{ID: "e15", Name: "Glute Bridges", Timing: RepBased(3, 15, DefaultRepSeconds), RestTime: 30},
			},
		},
		{
			ID:               "w4",
			Name:             "Mindful Movement",
			Type:             WorkoutFlexibility,
			Duration:         30,
			MoodBased:        true,
			RecommendedMoods: []Mood{MoodCalm, MoodStressed, MoodTired},
			Exercises: []Exercise{
				{ID: "e16", Name: "Deep Breathing", Timing: Timed(120), RestTime: 10},
				{ID: "e17", Name: "Standing Forward Fold", Timing: Timed(60), RestTime: 10},
				{ID: "e18", Name: "Warrior Sequence", Timing: Timed(180), RestTime: 20},
				{ID: "e19", Name: "Pigeon Pose", Timing: Timed(90), RestTime: 10},
				{ID: "e20", Name: "Seated Meditation", Timing: Timed(180), RestTime: 0},
			},
		},
		{
			ID:               "w5",
			Name:             "Cardio Burn",
			Type:             WorkoutCardio,
			Duration:         25,
			MoodBased:        true,
			RecommendedMoods: []Mood{MoodEnergized, MoodMotivated},
			Exercises: []Exercise{
				{ID: "e21", Name: "Warm-up Jog in Place", Timing: Timed(120), RestTime: 20},
				{ID: "e22", Name: "Speed Skaters", Timing: Timed(45), RestTime: 15},
				{ID: "e23", Name: "Box Steps", Timing: Timed(60), RestTime: 20},
				{ID: "e24", Name: "Lateral Shuffles", Timing: Timed(45), RestTime: 15},
				{ID: "e25", Name: "Cool Down Walk", Timing: Timed(120), RestTime: 0},
			},
		},
	}
}
