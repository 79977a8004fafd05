// Package summary derives the study overview shown on the statistics page
// from per-day review rows.
package summary

import (
	"math"
	"time"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// DayLayout is the format of ReviewStatsDay.Day.
const DayLayout = "2006-01-02"

// StreakWindow is how many days back a streak is followed.
const StreakWindow = 365

// Week totals the current Monday-based week.
type Week struct {
	Reviews  int `json:"reviews"`
	Accuracy int `json:"accuracy"`
	Days     int `json:"days"`
}

// Summary is the study overview for one day.
type Summary struct {
	Today      domain.ReviewStatsDay `json:"today"`
	Week       Week                  `json:"week"`
	Streak     int                   `json:"streak"`
	TotalCards int                   `json:"total_cards"`
}

// WindowStart returns the first day Compute looks at for the given today.
func WindowStart(today time.Time) time.Time {
	return today.AddDate(0, 0, -StreakWindow)
}

// Compute builds the summary for today. stats should cover at least
// [WindowStart(today), today]; rows outside that window are ignored.
func Compute(stats []domain.ReviewStatsDay, today time.Time, totalCards int) Summary {
	byDay := make(map[string]domain.ReviewStatsDay, len(stats))
	for _, s := range stats {
		byDay[s.Day] = s
	}

	todayKey := today.Format(DayLayout)
	todayStats, ok := byDay[todayKey]
	if !ok {
		todayStats = domain.ReviewStatsDay{Day: todayKey}
	}

	return Summary{
		Today:      todayStats,
		Week:       week(byDay, today),
		Streak:     streak(byDay, today),
		TotalCards: totalCards,
	}
}

func week(byDay map[string]domain.ReviewStatsDay, today time.Time) Week {
	// Sunday is the last day of the week.
	daysFromMonday := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -daysFromMonday)

	var w Week
	var correct int
	for i := 0; i < 7; i++ {
		s, ok := byDay[monday.AddDate(0, 0, i).Format(DayLayout)]
		if !ok || s.Reviews <= 0 {
			continue
		}
		w.Reviews += s.Reviews
		correct += s.Correct
		w.Days++
	}
	if w.Reviews > 0 {
		w.Accuracy = int(math.Round(float64(correct) / float64(w.Reviews) * 100))
	}
	return w
}

// streak counts consecutive completed days ending today. An unfinished
// today does not break a streak that reached yesterday.
func streak(byDay map[string]domain.ReviewStatsDay, today time.Time) int {
	completed := func(d time.Time) bool {
		s, ok := byDay[d.Format(DayLayout)]
		return ok && s.AllDueCompleted != nil && *s.AllDueCompleted
	}

	day := today
	if !completed(day) {
		day = day.AddDate(0, 0, -1)
	}

	start := WindowStart(today)
	n := 0
	for !day.Before(start) && completed(day) {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}
