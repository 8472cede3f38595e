package gamification

import "github.com/credify-app/credify/internal/domain"

// BuildSnapshot assembles the cumulative-state view achievement
// predicates run against. Counts come straight from the record
// collections; streak figures reuse the same backward-scan machinery as
// the streak calculator.
func BuildSnapshot(state *domain.State, summaries map[domain.Date]domain.DaySummary, today domain.Date) domain.Snapshot {
	overall := ComputeStreaks(summaries, state.Settings.StreakMode, today)

	snap := domain.Snapshot{
		TotalExpenses:    len(state.Financial.Expenses),
		TotalWorkouts:    len(state.Health.Workouts),
		TotalMeditations: len(state.Mindfulness.Meditations),
		TotalJournals:    len(state.Mindfulness.Journals),
		TotalGratitude:   len(state.Mindfulness.GratitudeLogs),
		CurrentStreak:    overall.Current,
		LongestStreak:    overall.Longest,
		Level:            LevelNumberFor(state.User.TotalXP),
		WaterStreak: CategoryStreak(summaries, today, func(s domain.DaySummary) bool {
			return s.WaterGlasses > 0
		}),
		WorkoutStreak: CategoryStreak(summaries, today, func(s domain.DaySummary) bool {
			return s.Workouts > 0
		}),
		UnderBudgetStreak: underBudgetStreak(state, today),
	}

	for _, g := range state.Financial.Goals {
		if g.Reached() {
			snap.GoalReached = true
			break
		}
	}
	return snap
}

// underBudgetStreak counts consecutive days ending today whose total
// spend stays at or under the daily slice of the monthly budget.
// Days before the account existed don't count; without a budget the
// streak is zero.
func underBudgetStreak(state *domain.State, today domain.Date) int {
	monthly := state.Financial.MonthlyBudget
	if monthly <= 0 {
		return 0
	}
	dailyLimit := monthly / 30

	since := domain.DateOf(state.User.CreatedAt)
	streak := 0
	day := today
	for scanned := 0; scanned < maxStreakScanDays; scanned++ {
		if day < since {
			break
		}
		if SpentOn(state, day) > dailyLimit {
			break
		}
		streak++
		day = day.AddDays(-1)
	}
	return streak
}
