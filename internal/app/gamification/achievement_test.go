package gamification_test

import (
	"testing"
	"time"

	"github.com/credify-app/credify/internal/app/gamification"
	"github.com/credify-app/credify/internal/domain"
)

func testUser() domain.User {
	return domain.NewUser("u1", "Tester", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
}

func TestEvaluateAchievements_FirstExpense(t *testing.T) {
	user := testUser()
	snap := domain.Snapshot{TotalExpenses: 1, Level: 1}

	newly := gamification.EvaluateAchievements(&user, snap)
	if len(newly) != 1 {
		t.Fatalf("expected exactly 1 unlock, got %d", len(newly))
	}
	if newly[0].ID != "firstExpense" {
		t.Errorf("unlocked %q, want firstExpense", newly[0].ID)
	}
	if newly[0].RewardXP != 25 {
		t.Errorf("reward = %d, want 25", newly[0].RewardXP)
	}
}

func TestEvaluateAchievements_AlreadyUnlockedSkipped(t *testing.T) {
	user := testUser()
	user.Achievements = []string{"firstExpense"}
	snap := domain.Snapshot{TotalExpenses: 5, Level: 1}

	newly := gamification.EvaluateAchievements(&user, snap)
	for _, def := range newly {
		if def.ID == "firstExpense" {
			t.Error("firstExpense re-unlocked for an already-unlocked user")
		}
	}
}

func TestEvaluateAchievements_EvaluateTwiceIsNoop(t *testing.T) {
	user := testUser()
	snap := domain.Snapshot{
		TotalExpenses: 3, TotalWorkouts: 1, TotalMeditations: 1,
		CurrentStreak: 7, Level: 1,
	}

	first := gamification.EvaluateAchievements(&user, snap)
	if len(first) == 0 {
		t.Fatal("expected unlocks on first evaluation")
	}
	for _, def := range first {
		user.Achievements = append(user.Achievements, def.ID)
	}

	second := gamification.EvaluateAchievements(&user, snap)
	if len(second) != 0 {
		t.Errorf("second evaluation unlocked %d achievements, want 0", len(second))
	}
}

func TestEvaluateAchievements_StreakMilestones(t *testing.T) {
	user := testUser()
	snap := domain.Snapshot{CurrentStreak: 30, Level: 1}

	newly := gamification.EvaluateAchievements(&user, snap)
	ids := make(map[string]bool)
	for _, def := range newly {
		ids[def.ID] = true
	}
	if !ids["weekStreak"] || !ids["monthStreak"] {
		t.Errorf("30-day streak should unlock weekStreak and monthStreak, got %v", ids)
	}
}

func TestEvaluateAchievements_LevelGated(t *testing.T) {
	user := testUser()

	if newly := gamification.EvaluateAchievements(&user, domain.Snapshot{Level: 4}); len(newly) != 0 {
		t.Errorf("level 4 unlocked %d achievements, want 0", len(newly))
	}

	newly := gamification.EvaluateAchievements(&user, domain.Snapshot{Level: 10})
	ids := make(map[string]bool)
	for _, def := range newly {
		ids[def.ID] = true
	}
	if !ids["levelUp5"] || !ids["levelUp10"] {
		t.Errorf("level 10 should unlock both level achievements, got %v", ids)
	}
}

func TestEvaluateAchievements_PanickingPredicateIsFalse(t *testing.T) {
	user := testUser()
	defs := []domain.AchievementDef{
		{ID: "boom", Predicate: func(domain.Snapshot) bool { panic("bad predicate") }},
		{ID: "fine", Predicate: func(domain.Snapshot) bool { return true }},
	}

	// Swap the catalog for the duration of the test.
	orig := gamification.Achievements
	gamification.Achievements = defs
	defer func() { gamification.Achievements = orig }()

	newly := gamification.EvaluateAchievements(&user, domain.Snapshot{})
	if len(newly) != 1 || newly[0].ID != "fine" {
		t.Errorf("panicking predicate should be skipped, healthy one kept; got %v", newly)
	}
}

func TestAchievementCatalog_Complete(t *testing.T) {
	if len(gamification.Achievements) != 13 {
		t.Errorf("catalog has %d entries, want 13", len(gamification.Achievements))
	}
	seen := make(map[string]bool)
	for _, def := range gamification.Achievements {
		if def.ID == "" || def.Predicate == nil || def.RewardXP <= 0 {
			t.Errorf("malformed catalog entry %+v", def)
		}
		if seen[def.ID] {
			t.Errorf("duplicate achievement ID %q", def.ID)
		}
		seen[def.ID] = true
	}
	if gamification.AchievementByID("zenMaster") == nil {
		t.Error("AchievementByID failed to find zenMaster")
	}
	if gamification.AchievementByID("nope") != nil {
		t.Error("AchievementByID returned a def for an unknown ID")
	}
}
