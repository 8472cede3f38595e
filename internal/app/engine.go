// Package app provides the application-layer engine that owns the
// in-memory state and turns raw activity commits into XP, levels,
// streaks, achievement unlocks and challenge completions. It wires
// domain logic with infrastructure, never the reverse.
package app

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/credify-app/credify/internal/app/gamification"
	"github.com/credify-app/credify/internal/domain"
	"github.com/credify-app/credify/internal/infra/metrics"
	"github.com/credify-app/credify/internal/infra/persist"
	"github.com/credify-app/credify/internal/infra/sqlite"
)

// Config holds engine policy knobs.
type Config struct {
	// EndOfDayHour is the local hour from which the end-of-day
	// evaluation pass runs, giving time-window challenges their final
	// chance before the date rolls over.
	EndOfDayHour int
	// RetentionDays is how long old daily challenges are kept.
	RetentionDays int
	// SaveDebounce is the quiet period for coalesced state writes.
	SaveDebounce time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// DefaultConfig returns production engine defaults.
func DefaultConfig() Config {
	return Config{
		EndOfDayHour:  23,
		RetentionDays: 30,
		SaveDebounce:  persist.DefaultDebounce,
	}
}

// Engine is the single owner of application state. All mutations,
// aggregation, streak computation, achievement evaluation and challenge
// evaluation run sequentially under one mutex — there is no concurrent
// mutation of the user or the record collections. Persistence is
// fire-and-forget relative to in-memory state, which is authoritative.
type Engine struct {
	mu    sync.Mutex
	db    *sqlite.DB // nil when storage is unavailable (memory-only)
	state domain.State
	saver *persist.Saver
	cfg   Config
	rnd   *rand.Rand
}

// New creates the engine, reloading persisted state. A storage failure
// falls back to a fresh in-memory profile rather than failing: the app
// must come up even with a broken disk.
func New(db *sqlite.DB, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.EndOfDayHour <= 0 || cfg.EndOfDayHour > 23 {
		cfg.EndOfDayHour = def.EndOfDayHour
	}
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = def.RetentionDays
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	e := &Engine{
		db:    db,
		cfg:   cfg,
		saver: persist.New(cfg.SaveDebounce),
		rnd:   rand.New(rand.NewSource(cfg.Now().UnixNano())),
		state: domain.NewState(),
	}

	if db != nil {
		state, err := db.LoadState()
		if err != nil {
			log.Printf("[engine] load state failed, starting fresh in memory: %v", err)
		} else {
			e.state = state
		}
	}

	now := e.now()
	if e.state.User.ID == "" {
		e.state.User = domain.NewUser(uuid.NewString(), "Player", now)
		e.persistUser()
	}

	e.mu.Lock()
	e.purgeChallenges(now)
	e.react(now)
	e.mu.Unlock()

	return e
}

// Close flushes pending writes and releases the engine.
// The database handle is owned by the caller.
func (e *Engine) Close() error {
	return e.saver.Close()
}

func (e *Engine) now() time.Time { return e.cfg.Now() }

// ─── Activity operations ────────────────────────────────────────────────────

// LogExpense appends an expense and runs the evaluation pipeline.
// An empty date means today.
func (e *Engine) LogExpense(amount float64, category, description string, date domain.Date) (domain.Expense, error) {
	if amount <= 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.Expense{}, err
	}
	if category == "" {
		category = "other"
	}

	exp := domain.Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		CreatedAt:   now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertExpense(exp); err != nil {
			return domain.Expense{}, fmt.Errorf("insert expense: %w", err)
		}
	}
	e.state.Financial.Expenses = append([]domain.Expense{exp}, e.state.Financial.Expenses...)
	metrics.RecordsLogged.WithLabelValues("expense").Inc()

	e.grantXP(domain.XPLogExpense, domain.XPActivity, exp.ID, now)
	e.react(now)
	return exp, nil
}

// DeleteExpense removes an expense by ID and re-evaluates derived state.
func (e *Engine) DeleteExpense(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, exp := range e.state.Financial.Expenses {
		if exp.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}

	if e.db != nil {
		if err := e.db.DeleteExpense(id); err != nil {
			return err
		}
	}
	old := e.state.Financial.Expenses
	expenses := make([]domain.Expense, 0, len(old)-1)
	expenses = append(expenses, old[:idx]...)
	expenses = append(expenses, old[idx+1:]...)
	e.state.Financial.Expenses = expenses
	e.react(e.now())
	return nil
}

// LogWorkout appends a completed workout.
func (e *Engine) LogWorkout(workoutType string, duration, calories int, notes string, date domain.Date) (domain.Workout, error) {
	if duration <= 0 {
		return domain.Workout{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.Workout{}, err
	}
	if workoutType == "" {
		workoutType = "other"
	}

	w := domain.Workout{
		ID:        uuid.NewString(),
		Type:      workoutType,
		Duration:  duration,
		Calories:  calories,
		Notes:     notes,
		Date:      date,
		CreatedAt: now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertWorkout(w); err != nil {
			return domain.Workout{}, fmt.Errorf("insert workout: %w", err)
		}
	}
	e.state.Health.Workouts = append([]domain.Workout{w}, e.state.Health.Workouts...)
	metrics.RecordsLogged.WithLabelValues("workout").Inc()

	e.grantXP(domain.XPCompleteWorkout, domain.XPActivity, w.ID, now)
	e.react(now)
	return w, nil
}

// LogWater adds glasses to the date's single water record, creating it
// on first log. Water never produces a second record for the same day.
func (e *Engine) LogWater(glasses int, date domain.Date) (domain.WaterLog, error) {
	if glasses <= 0 {
		return domain.WaterLog{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.WaterLog{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var result domain.WaterLog
	if e.db != nil {
		result, err = e.db.AccumulateWater(domain.WaterLog{
			ID: uuid.NewString(), Glasses: glasses, Date: date,
		})
		if err != nil {
			return domain.WaterLog{}, fmt.Errorf("accumulate water: %w", err)
		}
	} else if existing := e.state.Health.WaterFor(date); existing != nil {
		result = *existing
		result.Glasses += glasses
	} else {
		result = domain.WaterLog{ID: uuid.NewString(), Glasses: glasses, Date: date}
	}
	e.state.Health.WaterLogs = withWaterLog(e.state.Health.WaterLogs, result)
	metrics.RecordsLogged.WithLabelValues("water").Inc()

	e.grantXP(domain.XPLogWater, domain.XPActivity, result.ID, now)
	e.react(now)
	return result, nil
}

// withWaterLog returns a fresh slice with the record's date replaced,
// or the record prepended when the date has no row yet. Snapshots
// handed out by State and Export share backing arrays with live state,
// so water rows are never mutated in place.
func withWaterLog(logs []domain.WaterLog, rec domain.WaterLog) []domain.WaterLog {
	for i, l := range logs {
		if l.Date == rec.Date {
			out := append([]domain.WaterLog(nil), logs...)
			out[i] = rec
			return out
		}
	}
	return append([]domain.WaterLog{rec}, logs...)
}

// LogMeal appends a meal record.
func (e *Engine) LogMeal(mealType domain.MealType, description string, calories int, date domain.Date) (domain.Meal, error) {
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.Meal{}, err
	}
	switch mealType {
	case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack:
	default:
		mealType = domain.MealSnack
	}

	m := domain.Meal{
		ID:          uuid.NewString(),
		Type:        mealType,
		Description: description,
		Calories:    calories,
		Date:        date,
		CreatedAt:   now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertMeal(m); err != nil {
			return domain.Meal{}, fmt.Errorf("insert meal: %w", err)
		}
	}
	e.state.Health.Meals = append([]domain.Meal{m}, e.state.Health.Meals...)
	metrics.RecordsLogged.WithLabelValues("meal").Inc()

	e.grantXP(domain.XPLogMeal, domain.XPActivity, m.ID, now)
	e.react(now)
	return m, nil
}

// LogMeditation appends a completed meditation session.
func (e *Engine) LogMeditation(duration int, medType domain.MeditationType, notes string, date domain.Date) (domain.Meditation, error) {
	if duration <= 0 {
		return domain.Meditation{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.Meditation{}, err
	}
	switch medType {
	case domain.MeditationGuided, domain.MeditationTimer, domain.MeditationBreathing:
	default:
		medType = domain.MeditationTimer
	}

	m := domain.Meditation{
		ID:        uuid.NewString(),
		Duration:  duration,
		Type:      medType,
		Notes:     notes,
		Date:      date,
		CreatedAt: now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertMeditation(m); err != nil {
			return domain.Meditation{}, fmt.Errorf("insert meditation: %w", err)
		}
	}
	e.state.Mindfulness.Meditations = append([]domain.Meditation{m}, e.state.Mindfulness.Meditations...)
	metrics.RecordsLogged.WithLabelValues("meditation").Inc()

	e.grantXP(domain.XPCompleteMeditation, domain.XPActivity, m.ID, now)
	e.react(now)
	return m, nil
}

// LogJournal appends a journal entry.
func (e *Engine) LogJournal(content, mood string, date domain.Date) (domain.Journal, error) {
	if content == "" {
		return domain.Journal{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.Journal{}, err
	}

	j := domain.Journal{
		ID:        uuid.NewString(),
		Content:   content,
		Mood:      mood,
		Date:      date,
		CreatedAt: now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertJournal(j); err != nil {
			return domain.Journal{}, fmt.Errorf("insert journal: %w", err)
		}
	}
	e.state.Mindfulness.Journals = append([]domain.Journal{j}, e.state.Mindfulness.Journals...)
	metrics.RecordsLogged.WithLabelValues("journal").Inc()

	e.grantXP(domain.XPJournalEntry, domain.XPActivity, j.ID, now)
	e.react(now)
	return j, nil
}

// LogGratitude appends a gratitude log.
func (e *Engine) LogGratitude(items []string, date domain.Date) (domain.GratitudeLog, error) {
	if len(items) == 0 {
		return domain.GratitudeLog{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.GratitudeLog{}, err
	}

	g := domain.GratitudeLog{
		ID:        uuid.NewString(),
		Items:     items,
		Date:      date,
		CreatedAt: now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertGratitude(g); err != nil {
			return domain.GratitudeLog{}, fmt.Errorf("insert gratitude: %w", err)
		}
	}
	e.state.Mindfulness.GratitudeLogs = append([]domain.GratitudeLog{g}, e.state.Mindfulness.GratitudeLogs...)
	metrics.RecordsLogged.WithLabelValues("gratitude").Inc()

	e.grantXP(domain.XPGratitudeLog, domain.XPActivity, g.ID, now)
	e.react(now)
	return g, nil
}

// LogMood appends a mood check-in.
func (e *Engine) LogMood(mood, notes string, date domain.Date) (domain.MoodEntry, error) {
	if mood == "" {
		return domain.MoodEntry{}, domain.ErrInvalidAmount
	}
	now := e.now()
	date, err := normalizeDate(date, now)
	if err != nil {
		return domain.MoodEntry{}, err
	}

	m := domain.MoodEntry{
		ID:        uuid.NewString(),
		Mood:      mood,
		Notes:     notes,
		Date:      date,
		CreatedAt: now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.InsertMood(m); err != nil {
			return domain.MoodEntry{}, fmt.Errorf("insert mood: %w", err)
		}
	}
	e.state.Mindfulness.Moods = append([]domain.MoodEntry{m}, e.state.Mindfulness.Moods...)
	metrics.RecordsLogged.WithLabelValues("mood").Inc()

	e.grantXP(domain.XPMoodCheckIn, domain.XPActivity, m.ID, now)
	e.react(now)
	return m, nil
}

// ─── Budgets and goals ──────────────────────────────────────────────────────

// SetBudget creates or replaces a per-category budget.
func (e *Engine) SetBudget(category string, amount float64, period domain.BudgetPeriod) (domain.Budget, error) {
	if amount <= 0 {
		return domain.Budget{}, domain.ErrInvalidAmount
	}
	switch period {
	case domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly:
	default:
		period = domain.PeriodMonthly
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	b := domain.Budget{ID: uuid.NewString(), Category: category, Amount: amount, Period: period}
	for i := range e.state.Financial.Budgets {
		if e.state.Financial.Budgets[i].Category == category {
			b.ID = e.state.Financial.Budgets[i].ID
			e.state.Financial.Budgets[i] = b
			return e.saveBudget(b)
		}
	}
	e.state.Financial.Budgets = append(e.state.Financial.Budgets, b)
	return e.saveBudget(b)
}

func (e *Engine) saveBudget(b domain.Budget) (domain.Budget, error) {
	if e.db != nil {
		if err := e.db.UpsertBudget(b); err != nil {
			return domain.Budget{}, fmt.Errorf("save budget: %w", err)
		}
	}
	e.react(e.now())
	return b, nil
}

// AddGoal creates a financial goal. Setting a goal earns a small XP
// reward.
func (e *Engine) AddGoal(title string, target float64, deadline domain.Date) (domain.FinancialGoal, error) {
	if title == "" || target <= 0 {
		return domain.FinancialGoal{}, domain.ErrInvalidAmount
	}
	if !deadline.IsZero() && !deadline.Valid() {
		return domain.FinancialGoal{}, domain.ErrInvalidDate
	}
	now := e.now()

	g := domain.FinancialGoal{
		ID:           uuid.NewString(),
		Title:        title,
		TargetAmount: target,
		Deadline:     deadline,
		CreatedAt:    now,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.UpsertGoal(g); err != nil {
			return domain.FinancialGoal{}, fmt.Errorf("save goal: %w", err)
		}
	}
	e.state.Financial.Goals = append(e.state.Financial.Goals, g)

	e.grantXP(domain.XPSetFinancialGoal, domain.XPGoal, g.ID, now)
	e.react(now)
	return g, nil
}

// UpdateGoalProgress sets a goal's current amount. Crossing the target
// for the first time marks the goal completed and grants the savings
// reward.
func (e *Engine) UpdateGoalProgress(id string, current float64) (domain.FinancialGoal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	for i, g := range e.state.Financial.Goals {
		if g.ID != id {
			continue
		}

		wasReached := g.Reached()
		g.CurrentAmount = current
		if g.Reached() && !wasReached && g.CompletedAt.IsZero() {
			g.CompletedAt = now
			e.grantXP(domain.XPReachSavingsGoal, domain.XPGoal, g.ID, now)
		}

		if e.db != nil {
			if err := e.db.UpsertGoal(g); err != nil {
				return domain.FinancialGoal{}, fmt.Errorf("save goal: %w", err)
			}
		}
		// Replace the slice rather than the element; earlier snapshots
		// may still be reading the old backing array.
		goals := append([]domain.FinancialGoal(nil), e.state.Financial.Goals...)
		goals[i] = g
		e.state.Financial.Goals = goals
		e.react(now)
		return g, nil
	}
	return domain.FinancialGoal{}, domain.ErrNotFound
}

// ─── Settings ───────────────────────────────────────────────────────────────

// UpdateSettings replaces the app settings, normalizing unknown values.
func (e *Engine) UpdateSettings(s domain.Settings) domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Settings = s.Normalize()
	e.react(e.now()) // streak mode affects the overall streak
	return e.state.Settings
}

// SetMonthlyBudget updates the monthly budget and currency.
func (e *Engine) SetMonthlyBudget(amount float64, currency string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount >= 0 {
		e.state.Financial.MonthlyBudget = amount
	}
	if currency != "" {
		e.state.Financial.Currency = currency
	}
	e.react(e.now())
}

// SetHealthGoals updates the daily water/calorie/step goals.
// Non-positive values leave the current goal unchanged.
func (e *Engine) SetHealthGoals(water, calories, steps int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if water > 0 {
		e.state.Health.DailyWaterGoal = water
	}
	if calories > 0 {
		e.state.Health.DailyCalorieGoal = calories
	}
	if steps > 0 {
		e.state.Health.DailyStepGoal = steps
	}
	e.react(e.now())
}

// SetMeditationGoal updates the daily meditation-minutes goal.
func (e *Engine) SetMeditationGoal(minutes int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if minutes > 0 {
		e.state.Mindfulness.MeditationGoal = minutes
	}
	e.react(e.now())
}

// Rename changes the display name.
func (e *Engine) Rename(name string) {
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.User.Name = name
	e.scheduleSave()
}

// ─── Evaluation pipeline ────────────────────────────────────────────────────

// Reevaluate runs the full pipeline without a new record. Safe to call
// redundantly — with no new qualifying state it is a no-op. Wired to the
// hourly timer and the foreground hook so time-window challenges get
// their end-of-day pass.
func (e *Engine) Reevaluate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.purgeChallenges(now)
	e.react(now)
}

// react is the fixed-order pipeline: aggregate → streaks → achievements
// → challenges, then level and a scheduled save. Callers hold e.mu.
func (e *Engine) react(now time.Time) {
	today := domain.DateOf(now)
	summaries := gamification.Aggregate(&e.state)

	e.state.User.Streaks = gamification.ComputeAllStreaks(summaries, e.state.Settings.StreakMode, today)

	// Achievements run to a fixpoint: an unlock grants XP, which can
	// raise the level and satisfy a level-gated achievement in the
	// same pass. Bounded by the catalog size.
	for {
		snap := gamification.BuildSnapshot(&e.state, summaries, today)
		newly := gamification.EvaluateAchievements(&e.state.User, snap)
		if len(newly) == 0 {
			break
		}
		for _, def := range newly {
			// Membership and XP move in one in-memory transition and
			// persist together in the single user-row upsert. The copy
			// keeps earlier Profile snapshots from sharing the array.
			held := e.state.User.Achievements
			unlocked := make([]string, 0, len(held)+1)
			unlocked = append(unlocked, held...)
			e.state.User.Achievements = append(unlocked, def.ID)
			e.grantXP(def.RewardXP, domain.XPAchievement, def.ID, now)
			metrics.AchievementsUnlocked.Inc()
		}
	}

	e.ensureChallenges(today)
	e.evaluateChallenges(summaries[today], today, now)

	e.state.User.Level = gamification.LevelNumberFor(e.state.User.TotalXP)
	metrics.UserLevel.Set(float64(e.state.User.Level))
	metrics.CurrentStreak.Set(float64(e.state.User.Streaks.Overall))

	e.scheduleSave()
}

// ensureChallenges generates the day's three challenges if none exist
// yet. Persisted rows for the date always win over regeneration.
func (e *Engine) ensureChallenges(today domain.Date) {
	if len(e.state.ChallengesFor(today)) > 0 {
		return
	}

	if e.db != nil {
		stored, err := e.db.ListChallenges(today)
		if err != nil {
			log.Printf("[engine] list challenges: %v", err)
		} else if len(stored) > 0 {
			e.state.Challenges = append(e.state.Challenges, stored...)
			return
		}
	}

	generated := gamification.GenerateChallenges(today, e.rnd)
	for _, c := range generated {
		if e.db != nil {
			if err := e.db.UpsertChallenge(c); err != nil {
				log.Printf("[engine] save challenge %s: %v", c.ID, err)
			}
		}
	}
	e.state.Challenges = append(e.state.Challenges, generated...)
}

func (e *Engine) evaluateChallenges(summary domain.DaySummary, today domain.Date, now time.Time) {
	ctx := domain.ChallengeContext{
		Summary:      summary,
		State:        &e.state,
		Now:          now,
		EndOfDay:     now.Hour() >= e.cfg.EndOfDayHour,
		SpentToday:   gamification.SpentOn(&e.state, today),
		MinutesToday: gamification.MeditationMinutesOn(&e.state, today),
	}

	// Work on a copy of the slice; completion flips flags, and earlier
	// snapshots may still be reading the old backing array.
	challenges := append([]domain.DailyChallenge(nil), e.state.Challenges...)
	changed := false
	for i := range challenges {
		c := &challenges[i]
		if c.Date != today || c.Completed {
			continue
		}
		if !gamification.EvaluateChallenge(*c, ctx) {
			continue
		}

		completed := true
		if e.db != nil {
			flipped, err := e.db.CompleteChallenge(c.ID)
			if err != nil {
				log.Printf("[engine] complete challenge %s: %v", c.ID, err)
				continue
			}
			completed = flipped
		}
		c.Completed = true
		changed = true
		if completed {
			e.grantXP(c.RewardXP, domain.XPChallenge, c.ID, now)
			metrics.ChallengesCompleted.WithLabelValues(string(c.Category)).Inc()
		}
	}
	if changed {
		e.state.Challenges = challenges
	}
}

// purgeChallenges drops challenges older than the retention window,
// both in memory and in storage.
func (e *Engine) purgeChallenges(now time.Time) {
	cutoff := domain.DateOf(now).AddDays(-e.cfg.RetentionDays)

	kept := make([]domain.DailyChallenge, 0, len(e.state.Challenges))
	for _, c := range e.state.Challenges {
		if c.Date >= cutoff {
			kept = append(kept, c)
		}
	}
	e.state.Challenges = kept

	if e.db != nil {
		if _, err := e.db.PurgeChallengesBefore(cutoff); err != nil {
			log.Printf("[engine] purge challenges: %v", err)
		}
	}
}

// grantXP adds experience points and records the grant in the ledger.
// TotalXP only ever grows. Callers hold e.mu.
func (e *Engine) grantXP(amount int64, source domain.XPSource, ref string, now time.Time) {
	if amount <= 0 {
		return
	}
	e.state.User.TotalXP += amount
	e.state.User.Level = gamification.LevelNumberFor(e.state.User.TotalXP)
	metrics.XPGranted.WithLabelValues(string(source)).Add(float64(amount))

	if e.db != nil {
		_, err := e.db.InsertXPGrant(domain.XPGrant{
			Timestamp: now,
			Source:    source,
			Ref:       ref,
			Amount:    amount,
			Balance:   e.state.User.TotalXP,
		})
		if err != nil {
			log.Printf("[engine] record xp grant: %v", err)
		}
	}
}

// ─── Persistence ────────────────────────────────────────────────────────────

// scheduleSave queues a coalesced write of the hot state (user row and
// settings). Activity records are written synchronously at commit time.
func (e *Engine) scheduleSave() {
	if e.db == nil {
		return
	}
	user := e.state.User
	settings := e.state // value copy; the flush reads scalar fields only
	db := e.db

	e.saver.Schedule(func() error {
		if err := db.SaveUser(user); err != nil {
			metrics.StateFlushes.WithLabelValues("error").Inc()
			return fmt.Errorf("save user: %w", err)
		}
		if err := db.SaveSettings(&settings); err != nil {
			metrics.StateFlushes.WithLabelValues("error").Inc()
			return fmt.Errorf("save settings: %w", err)
		}
		metrics.StateFlushes.WithLabelValues("ok").Inc()
		return nil
	})
}

func (e *Engine) persistUser() {
	if e.db == nil {
		return
	}
	if err := e.db.SaveUser(e.state.User); err != nil {
		log.Printf("[engine] save user: %v", err)
	}
}

// Flush forces any pending coalesced write to disk now. Wired to the
// app-background signal and shutdown.
func (e *Engine) Flush() error {
	return e.saver.Flush()
}

// ─── Views ──────────────────────────────────────────────────────────────────

// Profile is the computed user view for display.
type Profile struct {
	User         domain.User      `json:"user"`
	LevelInfo    domain.LevelInfo `json:"level_info"`
	RecentGrants []domain.XPGrant `json:"recent_grants,omitempty"`
}

// Profile returns the user with computed level info and recent XP
// grants.
func (e *Engine) Profile() Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := Profile{
		User:      e.state.User,
		LevelInfo: gamification.LevelFor(e.state.User.TotalXP),
	}
	if e.db != nil {
		grants, err := e.db.ListXPGrants(10)
		if err == nil {
			p.RecentGrants = grants
		}
	}
	return p
}

// Streaks returns the current streak block.
func (e *Engine) Streaks() domain.Streaks {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.User.Streaks
}

// StreakStats computes current/longest/total under the active mode.
func (e *Engine) StreakStats() domain.StreakStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	summaries := gamification.Aggregate(&e.state)
	return gamification.ComputeStreaks(summaries, e.state.Settings.StreakMode, domain.DateOf(e.now()))
}

// Summary returns the day's activity summary (zero-valued when the day
// has no activity).
func (e *Engine) Summary(date domain.Date) domain.DaySummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := gamification.Aggregate(&e.state)[date]
	s.Date = date
	return s
}

// Calendar returns the sparse per-date summaries for the trailing
// window, oldest first. Absent days simply have no entry.
func (e *Engine) Calendar(weeks int) []domain.DaySummary {
	if weeks <= 0 {
		weeks = 52
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	today := domain.DateOf(e.now())
	start := today.AddDays(-weeks*7 + 1)

	var out []domain.DaySummary
	for date, s := range gamification.Aggregate(&e.state) {
		if date >= start && date <= today {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// AchievementStatus pairs a catalog entry with its unlock state.
type AchievementStatus struct {
	domain.AchievementDef
	Unlocked bool `json:"unlocked"`
}

// Achievements returns the full catalog with unlock flags.
func (e *Engine) Achievements() []AchievementStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]AchievementStatus, 0, len(gamification.Achievements))
	for _, def := range gamification.Achievements {
		out = append(out, AchievementStatus{
			AchievementDef: def,
			Unlocked:       e.state.User.HasAchievement(def.ID),
		})
	}
	return out
}

// Challenges returns the challenges for a date (today when empty).
func (e *Engine) Challenges(date domain.Date) []domain.DailyChallenge {
	e.mu.Lock()
	defer e.mu.Unlock()

	if date.IsZero() {
		date = domain.DateOf(e.now())
	}
	return e.state.ChallengesFor(date)
}

// Settings returns the active app settings.
func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Settings
}

// State returns a snapshot copy of the full state tree.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ─── Reset ──────────────────────────────────────────────────────────────────

// Reset wipes all data and starts over with a fresh profile. Destructive;
// callers must confirm with the user first.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db != nil {
		if err := e.db.ResetAll(); err != nil {
			return fmt.Errorf("reset storage: %w", err)
		}
	}

	now := e.now()
	e.state = domain.NewState()
	e.state.User = domain.NewUser(uuid.NewString(), "Player", now)
	e.persistUser()
	e.react(now)
	return nil
}

func normalizeDate(date domain.Date, now time.Time) (domain.Date, error) {
	if date.IsZero() {
		return domain.DateOf(now), nil
	}
	if !date.Valid() {
		return "", domain.ErrInvalidDate
	}
	return date, nil
}
