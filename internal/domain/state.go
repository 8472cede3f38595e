package domain

// FinancialState holds all finance records and configuration.
type FinancialState struct {
	Expenses      []Expense       `json:"expenses"`
	Budgets       []Budget        `json:"budgets"`
	Goals         []FinancialGoal `json:"goals"`
	MonthlyBudget float64         `json:"monthly_budget"`
	Currency      string          `json:"currency"`
}

// HealthState holds all health records and daily goals.
type HealthState struct {
	Workouts         []Workout  `json:"workouts"`
	WaterLogs        []WaterLog `json:"water_logs"`
	Meals            []Meal     `json:"meals"`
	DailyWaterGoal   int        `json:"daily_water_goal"`
	DailyCalorieGoal int        `json:"daily_calorie_goal"`
	DailyStepGoal    int        `json:"daily_step_goal"`
}

// MindfulnessState holds all mindfulness records and goals.
type MindfulnessState struct {
	Meditations    []Meditation   `json:"meditations"`
	Journals       []Journal      `json:"journals"`
	GratitudeLogs  []GratitudeLog `json:"gratitude_logs"`
	Moods          []MoodEntry    `json:"moods"`
	MeditationGoal int            `json:"meditation_goal"` // minutes per day
}

// State is the full in-memory application state. The engine owns exactly
// one State; all derived views (summaries, streaks) are recomputed from
// it, never cached across mutations.
type State struct {
	User        User             `json:"user"`
	Financial   FinancialState   `json:"financial"`
	Health      HealthState      `json:"health"`
	Mindfulness MindfulnessState `json:"mindfulness"`
	Challenges  []DailyChallenge `json:"daily_challenges"`
	Settings    Settings         `json:"settings"`
}

// NewState returns an empty state with default goals and settings.
func NewState() State {
	return State{
		Financial: FinancialState{
			Expenses: []Expense{},
			Budgets:  []Budget{},
			Goals:    []FinancialGoal{},
			Currency: "$",
		},
		Health: HealthState{
			Workouts:         []Workout{},
			WaterLogs:        []WaterLog{},
			Meals:            []Meal{},
			DailyWaterGoal:   8,
			DailyCalorieGoal: 2000,
			DailyStepGoal:    10000,
		},
		Mindfulness: MindfulnessState{
			Meditations:    []Meditation{},
			Journals:       []Journal{},
			GratitudeLogs:  []GratitudeLog{},
			Moods:          []MoodEntry{},
			MeditationGoal: 10,
		},
		Challenges: []DailyChallenge{},
		Settings:   DefaultSettings(),
	}
}

// WaterFor returns the water log for a date, or nil.
func (h *HealthState) WaterFor(date Date) *WaterLog {
	for i := range h.WaterLogs {
		if h.WaterLogs[i].Date == date {
			return &h.WaterLogs[i]
		}
	}
	return nil
}

// ChallengesFor returns the challenges generated for a date.
func (s *State) ChallengesFor(date Date) []DailyChallenge {
	var out []DailyChallenge
	for _, c := range s.Challenges {
		if c.Date == date {
			out = append(out, c)
		}
	}
	return out
}
