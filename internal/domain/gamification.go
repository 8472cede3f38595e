package domain

import "time"

// Category groups activity by life area.
type Category string

const (
	CatFinancial   Category = "financial"
	CatHealth      Category = "health"
	CatMindfulness Category = "mindfulness"
	CatGeneral     Category = "general"
)

// ─── Levels ─────────────────────────────────────────────────────────────────

// LevelThreshold is one row of the level table.
type LevelThreshold struct {
	Level int    `json:"level"`
	MinXP int64  `json:"min_xp"`
	Title string `json:"title"`
}

// LevelTable is the fixed ascending XP curve. The top entry is the max
// level; there is nothing beyond Immortal.
var LevelTable = []LevelThreshold{
	{1, 0, "Beginner"},
	{2, 100, "Novice"},
	{3, 250, "Apprentice"},
	{4, 500, "Skilled"},
	{5, 1000, "Adept"},
	{6, 1750, "Expert"},
	{7, 2750, "Master"},
	{8, 4000, "Grandmaster"},
	{9, 5500, "Legend"},
	{10, 7500, "Mythic"},
	{11, 10000, "Transcendent"},
	{12, 15000, "Immortal"},
}

// LevelInfo is the computed level state for an XP total.
type LevelInfo struct {
	Level    int     `json:"level"`
	Title    string  `json:"title"`
	Progress float64 `json:"progress"` // fraction of the current band, 0..1
	XPToNext int64   `json:"xp_to_next"`
}

// MaxLevel reports whether the level is the table's top entry.
func (l LevelInfo) MaxLevel() bool {
	return l.Level >= LevelTable[len(LevelTable)-1].Level
}

// ─── XP rewards ─────────────────────────────────────────────────────────────

// XPSource categorizes how XP was earned, for the grant ledger.
type XPSource string

const (
	XPActivity    XPSource = "activity"
	XPAchievement XPSource = "achievement"
	XPChallenge   XPSource = "challenge"
	XPGoal        XPSource = "goal"
	XPImport      XPSource = "import"
)

// XP rewards per action.
const (
	XPLogExpense         int64 = 5
	XPSetFinancialGoal   int64 = 10
	XPReachSavingsGoal   int64 = 100
	XPCompleteWorkout    int64 = 15
	XPLogWater           int64 = 5
	XPLogMeal            int64 = 5
	XPCompleteMeditation int64 = 10
	XPJournalEntry       int64 = 10
	XPGratitudeLog       int64 = 5
	XPMoodCheckIn        int64 = 5
)

// XPGrant is one entry in the append-only XP ledger. Balance is the
// user's total XP after the grant; the sum of all amounts always equals
// the user's TotalXP.
type XPGrant struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    XPSource  `json:"source"`
	Ref       string    `json:"ref,omitempty"` // record, achievement or challenge ID
	Amount    int64     `json:"amount"`
	Balance   int64     `json:"balance"`
}

// ─── Daily summary ──────────────────────────────────────────────────────────

// DaySummary is the derived per-date activity aggregate. Count is the
// number of categories present that day (water counts only when glasses
// are above zero), so it ranges 0–6. Days with no activity are not
// materialized at all.
type DaySummary struct {
	Date           Date `json:"date"`
	Expenses       int  `json:"expenses"`
	Workouts       int  `json:"workouts"`
	Meditations    int  `json:"meditations"`
	Journals       int  `json:"journals"`
	Gratitude      int  `json:"gratitude"`
	GratitudeItems int  `json:"gratitude_items"`
	WaterGlasses   int  `json:"water_glasses"`
	Count          int  `json:"count"`
}

// FinancialActive reports financial activity on this day.
func (d DaySummary) FinancialActive() bool { return d.Expenses > 0 }

// HealthActive reports health activity on this day (workout or water).
func (d DaySummary) HealthActive() bool {
	return d.Workouts > 0 || d.WaterGlasses > 0
}

// MindfulnessActive reports mindfulness activity on this day.
func (d DaySummary) MindfulnessActive() bool {
	return d.Meditations > 0 || d.Journals > 0 || d.Gratitude > 0
}

// StreakStats is the result of a streak computation.
type StreakStats struct {
	Current         int `json:"current"`
	Longest         int `json:"longest"`
	TotalActiveDays int `json:"total_active_days"`
}

// ─── Achievements ───────────────────────────────────────────────────────────

// Snapshot is the cumulative-state view fed to achievement predicates.
// Built fresh on every evaluation; predicates must treat it as read-only.
type Snapshot struct {
	TotalExpenses     int
	TotalWorkouts     int
	TotalMeditations  int
	TotalJournals     int
	TotalGratitude    int
	WaterStreak       int // consecutive days with water logged
	WorkoutStreak     int // consecutive days with a workout
	UnderBudgetStreak int // consecutive days at or under the daily budget
	CurrentStreak     int
	LongestStreak     int
	GoalReached       bool // any financial goal target met
	Level             int
}

// AchievementDef is a static catalog entry. Unlock state lives on
// User.Achievements as a set of IDs; re-evaluating an unlocked
// achievement never grants again.
type AchievementDef struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Category    Category             `json:"category"`
	RewardXP    int64                `json:"reward_xp"`
	Predicate   func(Snapshot) bool  `json:"-"`
}

// ─── Daily challenges ───────────────────────────────────────────────────────

// DailyChallenge is one generated challenge instance. Its ID is
// "<date>-<templateID>", which makes per-date generation naturally
// idempotent under upsert.
type DailyChallenge struct {
	ID          string   `json:"id"`
	TemplateID  string   `json:"template_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	RewardXP    int64    `json:"xp_reward"`
	Category    Category `json:"category"`
	Completed   bool     `json:"completed"`
	Date        Date     `json:"date"`
}

// ChallengeContext is what a challenge predicate sees: the day's summary
// plus the configuration it may need. EndOfDay is set during the final
// evaluation pass in the last hour of the day, which is when time-window
// challenges ("no spend today") get their one chance to complete.
type ChallengeContext struct {
	Summary        DaySummary
	State          *State
	Now            time.Time
	EndOfDay       bool
	SpentToday     float64
	MinutesToday   int // meditation minutes today
}

// ChallengeTemplate is a static catalog entry for challenge generation.
type ChallengeTemplate struct {
	ID          string                      `json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	RewardXP    int64                       `json:"xp_reward"`
	Category    Category                    `json:"category"`
	Predicate   func(ChallengeContext) bool `json:"-"`
}
