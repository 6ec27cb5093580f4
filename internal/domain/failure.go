package domain

import (
	"errors"
	"time"
)

// FailureCategory classifies why a workout was missed.
type FailureCategory string

const (
	FailureTime       FailureCategory = "time"
	FailureMotivation FailureCategory = "motivation"
	FailureEnergy     FailureCategory = "energy"
	FailureHealth     FailureCategory = "health"
	FailureSchedule   FailureCategory = "schedule"
	FailureOther      FailureCategory = "other"
)

// FailureCategories lists every category in canonical order. The top
// category of a breakdown is the first one in this order with the highest count.
var FailureCategories = []FailureCategory{
	FailureTime, FailureMotivation, FailureEnergy, FailureHealth, FailureSchedule, FailureOther,
}

// ErrInvalidCategory indicates a failure category outside the known set.
var ErrInvalidCategory = errors.New("category must be one of time, motivation, energy, health, schedule, other")

// CategoryInfo is the copy shown alongside a failure category.
type CategoryInfo struct {
	Title    string `json:"title"`
	Label    string `json:"label"`
	Question string `json:"question"`
	Tip      string `json:"tip"`
}

var categoryInfo = map[FailureCategory]CategoryInfo{
	FailureTime: {
		Title:    "Time constraints",
		Label:    "Not enough time",
		Question: "What took up your time instead?",
		Tip:      "Try scheduling shorter workouts or breaking them into smaller sessions throughout the day.",
	},
	FailureMotivation: {
		Title:    "Motivation",
		Label:    "Lack of motivation",
		Question: "What made it hard to get started?",
		Tip:      "Set smaller goals, find a workout buddy, or try new workout types to reignite interest.",
	},
	FailureEnergy: {
		Title:    "Energy levels",
		Label:    "Too tired",
		Question: "What drained your energy?",
		Tip:      "Focus on sleep quality and nutrition, and consider lighter recovery workouts on low-energy days.",
	},
	FailureHealth: {
		Title:    "Health",
		Label:    "Health issues",
		Question: "What health concern held you back?",
		Tip:      "Listen to your body. Consult a professional if issues persist, and try gentle movement when possible.",
	},
	FailureSchedule: {
		Title:    "Schedule",
		Label:    "Schedule conflict",
		Question: "What conflicted with your workout?",
		Tip:      "Build workouts into your calendar as non-negotiable appointments. Morning sessions often have fewer conflicts.",
	},
	FailureOther: {
		Title:    "Other",
		Label:    "Other reason",
		Question: "What happened?",
		Tip:      "Reflect on recurring patterns and consider adjusting your routine to address them.",
	},
}

// Valid reports whether c is a known category.
func (c FailureCategory) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the display copy for c. Unknown categories get the copy of
// FailureOther.
func (c FailureCategory) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[FailureOther]
}

// FailureEntry is an immutable "missed workout" event.
type FailureEntry struct {
	ID                 string          `json:"id"`
	Date               time.Time       `json:"date"`
	Reason             string          `json:"reason"`
	Category           FailureCategory `json:"category"`
	Notes              string          `json:"notes,omitempty"`
	ScheduledWorkoutID string          `json:"scheduledWorkoutId,omitempty"`
}

// RecordID implements eventstore.Record.
func (e *FailureEntry) RecordID() string { return e.ID }

// SetRecordID implements eventstore.Record.
func (e *FailureEntry) SetRecordID(id string) { e.ID = id }
