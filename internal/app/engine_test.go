package app_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/credify-app/credify/internal/app"
	"github.com/credify-app/credify/internal/domain"
	"github.com/credify-app/credify/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// noon is the fixed test clock: mid-day, well before the end-of-day
// evaluation pass.
var noon = time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

func testConfig(now time.Time) app.Config {
	cfg := app.DefaultConfig()
	cfg.SaveDebounce = time.Millisecond
	cfg.Now = func() time.Time { return now }
	return cfg
}

func newTestEngine(t *testing.T, db *sqlite.DB, now time.Time) *app.Engine {
	t.Helper()
	e := app.New(db, testConfig(now))
	t.Cleanup(func() { e.Close() })
	return e
}

func TestEngine_FirstExpenseGrantsActivityAndAchievementXP(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	exp, err := e.LogExpense(12.50, "food", "lunch", "")
	if err != nil {
		t.Fatalf("log expense: %v", err)
	}
	if exp.Date != "2026-03-05" {
		t.Errorf("expense date = %s, want today", exp.Date)
	}

	p := e.Profile()
	// 5 for the expense plus 25 for the firstExpense unlock.
	if p.User.TotalXP != 30 {
		t.Errorf("total XP = %d, want 30", p.User.TotalXP)
	}
	if !p.User.HasAchievement("firstExpense") {
		t.Error("firstExpense not unlocked")
	}
}

func TestEngine_InvalidInputRejected(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	if _, err := e.LogExpense(-5, "food", "", ""); err != domain.ErrInvalidAmount {
		t.Errorf("negative amount error = %v, want ErrInvalidAmount", err)
	}
	if _, err := e.LogExpense(5, "food", "", "not-a-date"); err != domain.ErrInvalidDate {
		t.Errorf("bad date error = %v, want ErrInvalidDate", err)
	}
	if p := e.Profile(); p.User.TotalXP != 0 {
		t.Errorf("rejected input still granted XP: %d", p.User.TotalXP)
	}
}

func TestEngine_WaterAccumulatesIntoOneRecord(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	if _, err := e.LogWater(3, ""); err != nil {
		t.Fatalf("first water log: %v", err)
	}
	w, err := e.LogWater(2, "")
	if err != nil {
		t.Fatalf("second water log: %v", err)
	}
	if w.Glasses != 5 {
		t.Errorf("glasses = %d, want accumulated 5", w.Glasses)
	}

	state := e.State()
	count := 0
	for _, wl := range state.Health.WaterLogs {
		if wl.Date == "2026-03-05" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("found %d water records for the day, want 1", count)
	}
	// Each log still earns its own XP.
	if p := e.Profile(); p.User.TotalXP != 10 {
		t.Errorf("total XP = %d, want 10", p.User.TotalXP)
	}
}

func TestEngine_ReloadDoesNotRegrant(t *testing.T) {
	db := testDB(t)

	e1 := app.New(db, testConfig(noon))
	if _, err := e1.LogExpense(10, "food", "", ""); err != nil {
		t.Fatalf("log expense: %v", err)
	}
	wantXP := e1.Profile().User.TotalXP
	if err := e1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A fresh engine over the same store replays nothing: XP and
	// achievements come back from the user row as-is.
	e2 := newTestEngine(t, db, noon)
	p := e2.Profile()
	if p.User.TotalXP != wantXP {
		t.Errorf("XP after reload = %d, want %d", p.User.TotalXP, wantXP)
	}
	if !p.User.HasAchievement("firstExpense") {
		t.Error("achievement lost on reload")
	}
}

func TestEngine_ChallengeGenerationIdempotent(t *testing.T) {
	db := testDB(t)

	e1 := app.New(db, testConfig(noon))
	first := e1.Challenges("")
	if len(first) != 3 {
		t.Fatalf("generated %d challenges, want 3", len(first))
	}
	if err := e1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	e2 := newTestEngine(t, db, noon)
	second := e2.Challenges("")
	if len(second) != 3 {
		t.Fatalf("after reload %d challenges, want the same 3", len(second))
	}
	ids := make(map[string]bool)
	for _, c := range first {
		ids[c.ID] = true
	}
	for _, c := range second {
		if !ids[c.ID] {
			t.Errorf("challenge %s appeared only after reload", c.ID)
		}
	}
}

func TestEngine_ChallengeCompletionGrantsOnce(t *testing.T) {
	db := testDB(t)

	// Pin today's health challenge so the test does not depend on the
	// random pick.
	seed := domain.DailyChallenge{
		ID: "2026-03-05-workout", TemplateID: "workout", Title: "Get Moving",
		RewardXP: 20, Category: domain.CatHealth, Date: "2026-03-05",
	}
	if err := db.UpsertChallenge(seed); err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	e := newTestEngine(t, db, noon)

	if _, err := e.LogWorkout("running", 30, 200, "", ""); err != nil {
		t.Fatalf("log workout: %v", err)
	}
	// 15 workout + 25 firstWorkout + 20 challenge.
	if p := e.Profile(); p.User.TotalXP != 60 {
		t.Errorf("total XP = %d, want 60", p.User.TotalXP)
	}

	var completed bool
	for _, c := range e.Challenges("") {
		if c.ID == seed.ID {
			completed = c.Completed
		}
	}
	if !completed {
		t.Error("workout challenge not marked completed")
	}

	// A second workout must not pay the challenge again.
	if _, err := e.LogWorkout("cycling", 20, 0, "", ""); err != nil {
		t.Fatalf("second workout: %v", err)
	}
	if p := e.Profile(); p.User.TotalXP != 75 {
		t.Errorf("total XP after second workout = %d, want 75", p.User.TotalXP)
	}
}

func TestEngine_EndOfDayPassCompletesNoSpend(t *testing.T) {
	db := testDB(t)
	seed := domain.DailyChallenge{
		ID: "2026-03-05-noSpend", TemplateID: "noSpend", Title: "No Spend Day",
		RewardXP: 30, Category: domain.CatFinancial, Date: "2026-03-05",
	}
	if err := db.UpsertChallenge(seed); err != nil {
		t.Fatalf("seed challenge: %v", err)
	}

	lateEvening := time.Date(2026, 3, 5, 23, 15, 0, 0, time.UTC)
	e := newTestEngine(t, db, lateEvening)

	// The constructor's evaluation pass already ran inside the
	// end-of-day window with no expenses logged.
	var completed bool
	for _, c := range e.Challenges("") {
		if c.ID == seed.ID {
			completed = c.Completed
		}
	}
	if !completed {
		t.Error("noSpend not completed during the end-of-day pass")
	}
	if p := e.Profile(); p.User.TotalXP != 30 {
		t.Errorf("total XP = %d, want 30", p.User.TotalXP)
	}
}

func TestEngine_GoalReachedGrantsOnce(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	g, err := e.AddGoal("Emergency fund", 500, "")
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	// Setting a goal pays 10.
	if p := e.Profile(); p.User.TotalXP != 10 {
		t.Errorf("XP after AddGoal = %d, want 10", p.User.TotalXP)
	}

	if _, err := e.UpdateGoalProgress(g.ID, 500); err != nil {
		t.Fatalf("update progress: %v", err)
	}
	// +100 for reaching it, +150 for savingsChamp.
	if p := e.Profile(); p.User.TotalXP != 260 {
		t.Errorf("XP after reaching goal = %d, want 260", p.User.TotalXP)
	}

	// Re-submitting the same progress must not pay again.
	if _, err := e.UpdateGoalProgress(g.ID, 600); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if p := e.Profile(); p.User.TotalXP != 260 {
		t.Errorf("XP after re-update = %d, want unchanged 260", p.User.TotalXP)
	}
}

func TestEngine_ReevaluateIsIdempotent(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	if _, err := e.LogExpense(10, "food", "", ""); err != nil {
		t.Fatalf("log expense: %v", err)
	}
	want := e.Profile().User.TotalXP

	for i := 0; i < 5; i++ {
		e.Reevaluate()
	}
	if got := e.Profile().User.TotalXP; got != want {
		t.Errorf("XP drifted from %d to %d across re-evaluations", want, got)
	}
}

func TestEngine_StreakAcrossDays(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	// The default "all" mode needs every category; switch to "any" so
	// journal entries alone keep the overall streak alive.
	settings := e.Settings()
	settings.StreakMode = domain.StreakAny
	e.UpdateSettings(settings)

	for _, date := range []domain.Date{"2026-03-03", "2026-03-04", "2026-03-05"} {
		if _, err := e.LogJournal("entry", "", date); err != nil {
			t.Fatalf("log journal for %s: %v", date, err)
		}
	}

	streaks := e.Streaks()
	if streaks.Overall != 3 {
		t.Errorf("overall streak = %d, want 3", streaks.Overall)
	}
	if streaks.Mindfulness != 3 {
		t.Errorf("mindfulness streak = %d, want 3", streaks.Mindfulness)
	}
	if streaks.Financial != 0 {
		t.Errorf("financial streak = %d, want 0", streaks.Financial)
	}
}

func TestEngine_MemoryOnlyFallback(t *testing.T) {
	// No storage at all: the engine must still run every operation.
	e := newTestEngine(t, nil, noon)

	if _, err := e.LogExpense(5, "food", "", ""); err != nil {
		t.Fatalf("log expense in memory mode: %v", err)
	}
	if _, err := e.LogWater(3, ""); err != nil {
		t.Fatalf("log water in memory mode: %v", err)
	}
	w, err := e.LogWater(2, "")
	if err != nil {
		t.Fatalf("second water log: %v", err)
	}
	if w.Glasses != 5 {
		t.Errorf("memory-mode water accumulation = %d, want 5", w.Glasses)
	}
	if p := e.Profile(); p.User.TotalXP != 40 { // 5+25 expense, 5+5 water
		t.Errorf("total XP = %d, want 40", p.User.TotalXP)
	}
}

func TestEngine_Reset(t *testing.T) {
	db := testDB(t)
	e := newTestEngine(t, db, noon)

	if _, err := e.LogExpense(10, "food", "", ""); err != nil {
		t.Fatalf("log expense: %v", err)
	}
	oldID := e.Profile().User.ID

	if err := e.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	p := e.Profile()
	if p.User.ID == oldID {
		t.Error("reset kept the old user identity")
	}
	if p.User.TotalXP != 0 {
		t.Errorf("XP after reset = %d, want 0", p.User.TotalXP)
	}
	if len(p.User.Achievements) != 0 {
		t.Errorf("achievements survived reset: %v", p.User.Achievements)
	}
	if n := len(e.State().Financial.Expenses); n != 0 {
		t.Errorf("%d expenses survived reset", n)
	}
}

func TestEngine_DeleteExpense(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	exp, err := e.LogExpense(10, "food", "", "")
	if err != nil {
		t.Fatalf("log expense: %v", err)
	}
	if err := e.DeleteExpense(exp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := e.DeleteExpense(exp.ID); err != domain.ErrNotFound {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	if s := e.Summary("2026-03-05"); s.Expenses != 0 {
		t.Errorf("summary still shows %d expenses", s.Expenses)
	}
}

func TestEngine_ExportConsistentDuringWrites(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		for i := 0; i < 200; i++ {
			if _, err := e.LogWater(1, ""); err != nil {
				t.Errorf("log water: %v", err)
				return
			}
		}
	}()

	// Export continuously while the writer runs. Every document must
	// parse and hold at most the single accumulated water row.
	for stopped := false; !stopped; {
		select {
		case <-done:
			stopped = true
		default:
		}
		data, err := e.Export()
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		var doc app.ExportDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("export unparseable mid-write: %v", err)
		}
		if n := len(doc.State.Health.WaterLogs); n > 1 {
			t.Fatalf("export holds %d water rows, want at most 1", n)
		}
	}
	wg.Wait()

	data, err := e.Export()
	if err != nil {
		t.Fatalf("final export: %v", err)
	}
	var doc app.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("final export unparseable: %v", err)
	}
	if got := doc.State.Health.WaterLogs[0].Glasses; got != 200 {
		t.Errorf("final export glasses = %d, want 200", got)
	}
}

func TestEngine_SnapshotsUnaffectedByLaterWrites(t *testing.T) {
	e := newTestEngine(t, testDB(t), noon)

	if _, err := e.LogWater(2, ""); err != nil {
		t.Fatalf("log water: %v", err)
	}
	goal, err := e.AddGoal("Emergency fund", 100, "")
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}

	snap := e.State()

	if _, err := e.LogWater(3, ""); err != nil {
		t.Fatalf("log water: %v", err)
	}
	if _, err := e.UpdateGoalProgress(goal.ID, 100); err != nil {
		t.Fatalf("update goal: %v", err)
	}

	if got := snap.Health.WaterLogs[0].Glasses; got != 2 {
		t.Errorf("snapshot water glasses = %d, want 2", got)
	}
	var snapGoal domain.FinancialGoal
	for _, g := range snap.Financial.Goals {
		if g.ID == goal.ID {
			snapGoal = g
		}
	}
	if snapGoal.CurrentAmount != 0 {
		t.Errorf("snapshot goal progress = %v, want 0", snapGoal.CurrentAmount)
	}
	if !snapGoal.CompletedAt.IsZero() {
		t.Error("snapshot goal marked completed by a later write")
	}

	live := e.State()
	if got := live.Health.WaterLogs[0].Glasses; got != 5 {
		t.Errorf("live water glasses = %d, want 5", got)
	}
	if live.Financial.Goals[0].CompletedAt.IsZero() {
		t.Error("live goal not completed")
	}
}
