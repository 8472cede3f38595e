package sqlite

import (
	"fmt"
	"strconv"

	"github.com/credify-app/credify/internal/domain"
)

// Settings keys. Goal configuration lives in the same KV table as UI
// preferences, matching the settings store contract.
const (
	keyStreakMode       = "streakMode"
	keyTheme            = "theme"
	keyStyle            = "style"
	keyMonthlyBudget    = "monthlyBudget"
	keyCurrency         = "currency"
	keyDailyWaterGoal   = "dailyWaterGoal"
	keyDailyCalorieGoal = "dailyCalorieGoal"
	keyDailyStepGoal    = "dailyStepGoal"
	keyMeditationGoal   = "meditationGoal"
)

// LoadState reconstructs the full application state from storage.
// The user row (XP, level, streaks, achievements) is authoritative —
// evaluators are never replayed over history. When no user exists the
// returned state has a zero-value user and the caller creates one.
func (d *DB) LoadState() (domain.State, error) {
	state := domain.NewState()

	user, err := d.GetUser()
	if err != nil {
		return state, fmt.Errorf("load user: %w", err)
	}
	if user != nil {
		state.User = *user
	}

	loaders := []func() error{
		func() (err error) { state.Financial.Expenses, err = d.ListExpenses(); return },
		func() (err error) { state.Financial.Budgets, err = d.ListBudgets(); return },
		func() (err error) { state.Financial.Goals, err = d.ListGoals(); return },
		func() (err error) { state.Health.Workouts, err = d.ListWorkouts(); return },
		func() (err error) { state.Health.WaterLogs, err = d.ListWaterLogs(); return },
		func() (err error) { state.Health.Meals, err = d.ListMeals(); return },
		func() (err error) { state.Mindfulness.Meditations, err = d.ListMeditations(); return },
		func() (err error) { state.Mindfulness.Journals, err = d.ListJournals(); return },
		func() (err error) { state.Mindfulness.GratitudeLogs, err = d.ListGratitude(); return },
		func() (err error) { state.Mindfulness.Moods, err = d.ListMoods(); return },
		func() (err error) { state.Challenges, err = d.ListAllChallenges(); return },
	}
	for _, load := range loaders {
		if err := load(); err != nil {
			return state, fmt.Errorf("load state: %w", err)
		}
	}

	if err := d.loadSettings(&state); err != nil {
		return state, fmt.Errorf("load settings: %w", err)
	}
	return state, nil
}

func (d *DB) loadSettings(state *domain.State) error {
	get := func(key string) string {
		v, _ := d.GetSetting(key)
		return v
	}

	state.Settings = domain.Settings{
		StreakMode: domain.StreakMode(get(keyStreakMode)),
		Theme:      domain.Theme(get(keyTheme)),
		Style:      domain.Style(get(keyStyle)),
	}.Normalize()

	if v := get(keyMonthlyBudget); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			state.Financial.MonthlyBudget = f
		}
	}
	if v := get(keyCurrency); v != "" {
		state.Financial.Currency = v
	}
	for _, s := range []struct {
		key  string
		dest *int
	}{
		{keyDailyWaterGoal, &state.Health.DailyWaterGoal},
		{keyDailyCalorieGoal, &state.Health.DailyCalorieGoal},
		{keyDailyStepGoal, &state.Health.DailyStepGoal},
		{keyMeditationGoal, &state.Mindfulness.MeditationGoal},
	} {
		if v := get(s.key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*s.dest = n
			}
		}
	}
	return nil
}

// SaveSettings flushes the settings and goal configuration to the KV
// table.
func (d *DB) SaveSettings(state *domain.State) error {
	pairs := map[string]string{
		keyStreakMode:       string(state.Settings.StreakMode),
		keyTheme:            string(state.Settings.Theme),
		keyStyle:            string(state.Settings.Style),
		keyMonthlyBudget:    strconv.FormatFloat(state.Financial.MonthlyBudget, 'f', -1, 64),
		keyCurrency:         state.Financial.Currency,
		keyDailyWaterGoal:   strconv.Itoa(state.Health.DailyWaterGoal),
		keyDailyCalorieGoal: strconv.Itoa(state.Health.DailyCalorieGoal),
		keyDailyStepGoal:    strconv.Itoa(state.Health.DailyStepGoal),
		keyMeditationGoal:   strconv.Itoa(state.Mindfulness.MeditationGoal),
	}
	for k, v := range pairs {
		if err := d.SetSetting(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}
