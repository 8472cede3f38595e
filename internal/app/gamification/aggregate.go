// Package gamification implements the Credify gamification core: the
// leveling function, the per-date activity aggregator, the streak
// calculator, the achievement evaluator and the daily challenge
// generator/evaluator. Everything here is either a pure function over
// domain.State or an explicit catalog; persistence and orchestration
// live in the app and infra layers.
package gamification

import "github.com/credify-app/credify/internal/domain"

// Aggregate builds the per-date activity summary map from the raw record
// collections. Deterministic full recompute; dates with no activity are
// simply absent. Count is the number of active categories that day
// (water counts only when glasses > 0).
func Aggregate(state *domain.State) map[domain.Date]domain.DaySummary {
	byDate := make(map[domain.Date]domain.DaySummary)

	touch := func(date domain.Date, f func(*domain.DaySummary)) {
		if date.IsZero() {
			return
		}
		s := byDate[date]
		s.Date = date
		f(&s)
		byDate[date] = s
	}

	for _, e := range state.Financial.Expenses {
		touch(e.Date, func(s *domain.DaySummary) { s.Expenses++ })
	}
	for _, w := range state.Health.Workouts {
		touch(w.Date, func(s *domain.DaySummary) { s.Workouts++ })
	}
	for _, wl := range state.Health.WaterLogs {
		glasses := wl.Glasses
		touch(wl.Date, func(s *domain.DaySummary) { s.WaterGlasses += glasses })
	}
	for _, m := range state.Mindfulness.Meditations {
		touch(m.Date, func(s *domain.DaySummary) { s.Meditations++ })
	}
	for _, j := range state.Mindfulness.Journals {
		touch(j.Date, func(s *domain.DaySummary) { s.Journals++ })
	}
	for _, g := range state.Mindfulness.GratitudeLogs {
		items := len(g.Items)
		touch(g.Date, func(s *domain.DaySummary) {
			s.Gratitude++
			s.GratitudeItems += items
		})
	}

	// Second pass: presence count. A water row with zero glasses does
	// not make the day active, so days may end up with Count == 0.
	for date, s := range byDate {
		s.Count = presenceCount(s)
		if s.Count == 0 {
			delete(byDate, date)
			continue
		}
		byDate[date] = s
	}

	return byDate
}

func presenceCount(s domain.DaySummary) int {
	n := 0
	for _, present := range []bool{
		s.Expenses > 0,
		s.Workouts > 0,
		s.Meditations > 0,
		s.Journals > 0,
		s.Gratitude > 0,
		s.WaterGlasses > 0,
	} {
		if present {
			n++
		}
	}
	return n
}

// SpentOn sums expense amounts for a date.
func SpentOn(state *domain.State, date domain.Date) float64 {
	var total float64
	for _, e := range state.Financial.Expenses {
		if e.Date == date {
			total += e.Amount
		}
	}
	return total
}

// MeditationMinutesOn sums meditation minutes for a date.
func MeditationMinutesOn(state *domain.State, date domain.Date) int {
	total := 0
	for _, m := range state.Mindfulness.Meditations {
		if m.Date == date {
			total += m.Duration
		}
	}
	return total
}
