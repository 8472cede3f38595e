package domain

import "time"

// Expense is a single logged expense.
type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// BudgetPeriod is the span a category budget covers.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "daily"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
)

// Budget is a per-category spending budget.
type Budget struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Amount   float64      `json:"amount"`
	Spent    float64      `json:"spent"`
	Period   BudgetPeriod `json:"period"`
}

// FinancialGoal is a savings target.
type FinancialGoal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      Date      `json:"deadline,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	CompletedAt   time.Time `json:"completed_at,omitempty"`
}

// Reached reports whether the goal target has been met.
func (g FinancialGoal) Reached() bool {
	return g.TargetAmount > 0 && g.CurrentAmount >= g.TargetAmount
}

// Workout is a single completed workout.
type Workout struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Duration  int       `json:"duration"` // minutes
	Calories  int       `json:"calories,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// WaterLog is the per-date water record. Unlike every other record type
// it is unique per date: logging water again on the same day adds to the
// existing row's glass count instead of appending a new record.
type WaterLog struct {
	ID      string `json:"id"`
	Glasses int    `json:"glasses"`
	Date    Date   `json:"date"`
}

// MealType classifies a meal log.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal is a logged meal.
type Meal struct {
	ID          string    `json:"id"`
	Type        MealType  `json:"type"`
	Description string    `json:"description"`
	Calories    int       `json:"calories,omitempty"`
	Date        Date      `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// MeditationType classifies a meditation session.
type MeditationType string

const (
	MeditationGuided    MeditationType = "guided"
	MeditationTimer     MeditationType = "timer"
	MeditationBreathing MeditationType = "breathing"
)

// Meditation is a completed meditation session.
type Meditation struct {
	ID        string         `json:"id"`
	Duration  int            `json:"duration"` // minutes
	Type      MeditationType `json:"type"`
	Notes     string         `json:"notes,omitempty"`
	Date      Date           `json:"date"`
	CreatedAt time.Time      `json:"created_at"`
}

// Journal is a journal entry.
type Journal struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// GratitudeLog is a list of things the user is grateful for on a day.
type GratitudeLog struct {
	ID        string    `json:"id"`
	Items     []string  `json:"items"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodEntry is a mood check-in.
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
