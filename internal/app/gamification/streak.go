package gamification

import (
	"sort"

	"github.com/credify-app/credify/internal/domain"
)

// maxStreakScanDays bounds the backward scan so a pathological record
// set can never loop unbounded.
const maxStreakScanDays = 365

// ComputeStreaks computes current streak, longest streak and total
// active days from the summary map under the given streak mode.
//
// The current streak scans backward from today; today itself is exempt —
// a day with no activity yet does not break the run until it is over.
// Empty input yields all zeros.
func ComputeStreaks(summaries map[domain.Date]domain.DaySummary, mode domain.StreakMode, today domain.Date) domain.StreakStats {
	return streakWhere(summaries, today, qualifier(mode))
}

// CategoryStreak computes the current consecutive-day streak for a
// single category predicate, with the same today-exempt rule.
func CategoryStreak(summaries map[domain.Date]domain.DaySummary, today domain.Date, qualify func(domain.DaySummary) bool) int {
	return streakWhere(summaries, today, qualify).Current
}

// ComputeAllStreaks derives the full user streak block: per-category
// current streaks, the overall streak under the configured mode, and the
// most recent active date.
func ComputeAllStreaks(summaries map[domain.Date]domain.DaySummary, mode domain.StreakMode, today domain.Date) domain.Streaks {
	s := domain.Streaks{
		Financial:   CategoryStreak(summaries, today, domain.DaySummary.FinancialActive),
		Health:      CategoryStreak(summaries, today, domain.DaySummary.HealthActive),
		Mindfulness: CategoryStreak(summaries, today, domain.DaySummary.MindfulnessActive),
		Overall:     ComputeStreaks(summaries, mode, today).Current,
	}

	for date := range summaries {
		if date > s.LastActivityDate {
			s.LastActivityDate = date
		}
	}
	return s
}

// qualifier returns the qualifying-day predicate for a streak mode.
// "all" requires financial, health and mindfulness presence on the same
// day; "any" (and anything unrecognized) just needs activity.
func qualifier(mode domain.StreakMode) func(domain.DaySummary) bool {
	if mode == domain.StreakAll {
		return func(s domain.DaySummary) bool {
			return s.FinancialActive() && s.HealthActive() && s.MindfulnessActive()
		}
	}
	return func(s domain.DaySummary) bool { return s.Count > 0 }
}

func streakWhere(summaries map[domain.Date]domain.DaySummary, today domain.Date, qualify func(domain.DaySummary) bool) domain.StreakStats {
	var stats domain.StreakStats
	if len(summaries) == 0 || today.IsZero() {
		return stats
	}

	qualifies := func(d domain.Date) bool {
		s, ok := summaries[d]
		return ok && qualify(s)
	}

	// Current: walk backward from today. Today may be silently skipped
	// if it does not qualify yet; any other miss ends the run.
	day := today
	for scanned := 0; scanned < maxStreakScanDays; scanned++ {
		if qualifies(day) {
			stats.Current++
		} else if day != today {
			break
		}
		day = day.AddDays(-1)
	}

	// Longest: walk forward over the full recorded range, tracking the
	// maximum run of consecutive qualifying days.
	var qualifying []domain.Date
	for date, s := range summaries {
		if qualify(s) {
			qualifying = append(qualifying, date)
		}
	}
	if len(qualifying) == 0 {
		return stats
	}
	sort.Slice(qualifying, func(i, j int) bool { return qualifying[i] < qualifying[j] })

	stats.TotalActiveDays = len(qualifying)

	run := 1
	stats.Longest = 1
	for i := 1; i < len(qualifying); i++ {
		if qualifying[i-1].AddDays(1) == qualifying[i] {
			run++
		} else {
			run = 1
		}
		if run > stats.Longest {
			stats.Longest = run
		}
	}
	return stats
}
