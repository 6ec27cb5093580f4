package app

import (
	"context"
	"math"
	"sort"
	"time"

	"moodfit/internal/domain"
)

// RecentSessionLimit caps the recent-sessions list in a report.
const RecentSessionLimit = 10

// AnalyticsService aggregates the event history on demand. It never writes.
type AnalyticsService struct {
	moods    MoodLog
	sessions SessionLog
	failures FailureLog
	stats    *StatsService
	now      Clock
}

// NewAnalyticsService creates an AnalyticsService over the given histories.
func NewAnalyticsService(moods MoodLog, sessions SessionLog, failures FailureLog, stats *StatsService) *AnalyticsService {
	return &AnalyticsService{moods: moods, sessions: sessions, failures: failures, stats: stats, now: time.Now}
}

// MoodCount is one row of the mood distribution.
type MoodCount struct {
	Mood       domain.Mood `json:"mood"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// MoodPerformance is the completion rate of sessions linked to one mood.
type MoodPerformance struct {
	Mood      domain.Mood `json:"mood"`
	Completed int         `json:"completed"`
	Total     int         `json:"total"`
	Rate      float64     `json:"rate"`
}

// DayProgress is one bucket of the weekly calendar.
type DayProgress struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Count     int    `json:"count"`
}

// CategoryCount is one row of the failure breakdown.
type CategoryCount struct {
	Category   domain.FailureCategory `json:"category"`
	Count      int                    `json:"count"`
	Percentage float64                `json:"percentage"`
	Info       domain.CategoryInfo    `json:"info"`
}

// FailureBreakdown groups failures by category. Top is nil when there are
// no failures.
type FailureBreakdown struct {
	Total      int                     `json:"total"`
	Categories []CategoryCount         `json:"categories"`
	Top        *domain.FailureCategory `json:"top"`
	TopCount   int                     `json:"topCount"`
	TopTip     string                  `json:"topTip,omitempty"`
}

// Report is the full analytics view.
type Report struct {
	GeneratedAt        time.Time               `json:"generatedAt"`
	Stats              domain.UserStats        `json:"stats"`
	DisciplineLevel    domain.DisciplineLevel  `json:"disciplineLevel"`
	TotalMoodEntries   int                     `json:"totalMoodEntries"`
	MoodDistribution   []MoodCount             `json:"moodDistribution"`
	MostCommonMood     *domain.Mood            `json:"mostCommonMood"`
	MoodPerformance    []MoodPerformance       `json:"moodPerformance"`
	WeeklyProgress     []DayProgress           `json:"weeklyProgress"`
	WeeklyCompleted    int                     `json:"weeklyCompleted"`
	MonthlyConsistency int                     `json:"monthlyConsistency"`
	Failures           FailureBreakdown        `json:"failures"`
	RecentSessions     []domain.WorkoutSession `json:"recentSessions"`
}

// Report builds the analytics view from a single read of each history.
func (s *AnalyticsService) Report(ctx context.Context) Report {
	now := s.now()
	moods := s.moods.ListAll(ctx)
	sessions := s.sessions.ListAll(ctx)
	failures := s.failures.ListAll(ctx)
	stats := s.stats.Stats(ctx)

	dist := MoodDistribution(moods)
	weekly := WeeklyProgress(sessions, now)
	weeklyCompleted := 0
	for _, d := range weekly {
		if d.Completed {
			weeklyCompleted++
		}
	}

	return Report{
		GeneratedAt:        now,
		Stats:              stats,
		DisciplineLevel:    domain.LevelFor(stats.DisciplineScore),
		TotalMoodEntries:   len(moods),
		MoodDistribution:   dist,
		MostCommonMood:     MostCommonMood(dist),
		MoodPerformance:    MoodPerformanceOf(moods, sessions),
		WeeklyProgress:     weekly,
		WeeklyCompleted:    weeklyCompleted,
		MonthlyConsistency: MonthlyConsistency(sessions, now),
		Failures:           BreakdownFailures(failures),
		RecentSessions:     RecentSessions(sessions, RecentSessionLimit),
	}
}

// percent returns part/total as a percentage rounded to one decimal, or 0
// when total is zero.
func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// MoodDistribution counts entries per mood. Only moods that occur are listed,
// most frequent first, ties in canonical mood order.
func MoodDistribution(entries []domain.MoodEntry) []MoodCount {
	counts := make(map[domain.Mood]int, len(domain.Moods))
	for _, e := range entries {
		counts[e.Mood]++
	}
	out := make([]MoodCount, 0, len(domain.Moods))
	for _, m := range domain.Moods {
		if counts[m] == 0 {
			continue
		}
		out = append(out, MoodCount{Mood: m, Count: counts[m], Percentage: percent(counts[m], len(entries))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// MostCommonMood returns the first mood of a distribution, or nil if empty.
func MostCommonMood(dist []MoodCount) *domain.Mood {
	if len(dist) == 0 {
		return nil
	}
	m := dist[0].Mood
	return &m
}

// MoodPerformanceOf links each mood entry carrying a workout id to the first
// session of that workout started at or after the entry, and reports the
// completion rate per mood. Moods without linked sessions are omitted.
//
// Sessions started before the entry are never linked, even when they are the
// earliest session of that workout overall.
func MoodPerformanceOf(entries []domain.MoodEntry, sessions []domain.WorkoutSession) []MoodPerformance {
	type tally struct{ completed, total int }
	tallies := make(map[domain.Mood]*tally, len(domain.Moods))

	for _, e := range entries {
		if e.WorkoutID == "" {
			continue
		}
		for _, sess := range sessions {
			if sess.WorkoutID != e.WorkoutID || sess.StartTime.Before(e.Timestamp) {
				continue
			}
			t := tallies[e.Mood]
			if t == nil {
				t = &tally{}
				tallies[e.Mood] = t
			}
			t.total++
			if sess.Completed {
				t.completed++
			}
			break
		}
	}

	out := make([]MoodPerformance, 0, len(tallies))
	for _, m := range domain.Moods {
		t := tallies[m]
		if t == nil || t.total == 0 {
			continue
		}
		out = append(out, MoodPerformance{Mood: m, Completed: t.completed, Total: t.total, Rate: percent(t.completed, t.total)})
	}
	return out
}

// WeekStart returns local midnight of the most recent Sunday at or before now,
// in now's location.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// WeeklyProgress buckets completed sessions into the seven days of the current
// week, Sunday first. It always returns exactly seven buckets.
func WeeklyProgress(sessions []domain.WorkoutSession, now time.Time) []DayProgress {
	start := WeekStart(now)
	days := make([]DayProgress, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = DayProgress{Day: d.Weekday().String()[:3], Date: d.Format("2006-01-02")}
	}
	end := start.AddDate(0, 0, 7)
	for _, sess := range sessions {
		if !sess.Completed {
			continue
		}
		t := sess.StartTime.In(now.Location())
		if t.Before(start) || !t.Before(end) {
			continue
		}
		for i := 6; i >= 0; i-- {
			if !t.Before(start.AddDate(0, 0, i)) {
				days[i].Count++
				days[i].Completed = true
				break
			}
		}
	}
	return days
}

// MonthlyConsistency is the number of sessions completed this month per
// elapsed day of the month, as a rounded percentage. It can exceed 100.
func MonthlyConsistency(sessions []domain.WorkoutSession, now time.Time) int {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	n := 0
	for _, sess := range sessions {
		if sess.Completed && !sess.StartTime.Before(monthStart) {
			n++
		}
	}
	return int(math.Round(float64(n) / float64(now.Day()) * 100))
}

// BreakdownFailures counts failures per category in canonical order. The top
// category is the first one in that order holding the highest count.
func BreakdownFailures(entries []domain.FailureEntry) FailureBreakdown {
	counts := make(map[domain.FailureCategory]int, len(domain.FailureCategories))
	for _, e := range entries {
		counts[e.Category]++
	}

	b := FailureBreakdown{Total: len(entries), Categories: make([]CategoryCount, 0, len(domain.FailureCategories))}
	for _, c := range domain.FailureCategories {
		n := counts[c]
		b.Categories = append(b.Categories, CategoryCount{
			Category:   c,
			Count:      n,
			Percentage: percent(n, len(entries)),
			Info:       c.Info(),
		})
		if n > b.TopCount {
			top := c
			b.Top = &top
			b.TopCount = n
			b.TopTip = c.Info().Tip
		}
	}
	return b
}

// RecentSessions returns up to limit completed sessions, newest first.
func RecentSessions(sessions []domain.WorkoutSession, limit int) []domain.WorkoutSession {
	out := make([]domain.WorkoutSession, 0, limit)
	for i := len(sessions) - 1; i >= 0 && len(out) < limit; i-- {
		if sessions[i].Completed {
			out = append(out, sessions[i])
		}
	}
	return out
}
