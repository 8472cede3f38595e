package gamification

import "github.com/credify-app/credify/internal/domain"

// Achievements is the static catalog. 13 achievements across the three
// life areas plus general milestones, each with a predicate over the
// cumulative Snapshot.
var Achievements = []domain.AchievementDef{
	// ── Financial ──────────────────────────────────────────────────
	{
		ID: "firstExpense", Title: "First Step", Category: domain.CatFinancial,
		Description: "Log your first expense", Icon: "💰", RewardXP: 25,
		Predicate: func(s domain.Snapshot) bool { return s.TotalExpenses >= 1 },
	},
	{
		ID: "budgetBoss", Title: "Budget Boss", Category: domain.CatFinancial,
		Description: "Stay under budget for 7 days", Icon: "👑", RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.UnderBudgetStreak >= 7 },
	},
	{
		ID: "savingsChamp", Title: "Savings Champion", Category: domain.CatFinancial,
		Description: "Reach your first savings goal", Icon: "🏆", RewardXP: 150,
		Predicate: func(s domain.Snapshot) bool { return s.GoalReached },
	},

	// ── Health ─────────────────────────────────────────────────────
	{
		ID: "firstWorkout", Title: "Iron Will", Category: domain.CatHealth,
		Description: "Complete your first workout", Icon: "💪", RewardXP: 25,
		Predicate: func(s domain.Snapshot) bool { return s.TotalWorkouts >= 1 },
	},
	{
		ID: "hydrationHero", Title: "Hydration Hero", Category: domain.CatHealth,
		Description: "Log water intake for 7 days", Icon: "💧", RewardXP: 75,
		Predicate: func(s domain.Snapshot) bool { return s.WaterStreak >= 7 },
	},
	{
		ID: "fitnessFreak", Title: "Fitness Freak", Category: domain.CatHealth,
		Description: "30-day workout streak", Icon: "🏋️", RewardXP: 300,
		Predicate: func(s domain.Snapshot) bool { return s.WorkoutStreak >= 30 },
	},

	// ── Mindfulness ────────────────────────────────────────────────
	{
		ID: "firstMeditation", Title: "Inner Peace", Category: domain.CatMindfulness,
		Description: "Complete your first meditation", Icon: "🧘", RewardXP: 25,
		Predicate: func(s domain.Snapshot) bool { return s.TotalMeditations >= 1 },
	},
	{
		ID: "journalJourney", Title: "Journal Journey", Category: domain.CatMindfulness,
		Description: "Write 10 journal entries", Icon: "📔", RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.TotalJournals >= 10 },
	},
	{
		ID: "zenMaster", Title: "Zen Master", Category: domain.CatMindfulness,
		Description: "Complete 100 meditation sessions", Icon: "🌟", RewardXP: 500,
		Predicate: func(s domain.Snapshot) bool { return s.TotalMeditations >= 100 },
	},

	// ── General ────────────────────────────────────────────────────
	{
		ID: "weekStreak", Title: "Week Warrior", Category: domain.CatGeneral,
		Description: "Maintain a 7-day streak", Icon: "🔥", RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.CurrentStreak >= 7 },
	},
	{
		ID: "monthStreak", Title: "Month Master", Category: domain.CatGeneral,
		Description: "Maintain a 30-day streak", Icon: "⚡", RewardXP: 200,
		Predicate: func(s domain.Snapshot) bool { return s.CurrentStreak >= 30 },
	},
	{
		ID: "levelUp5", Title: "Rising Star", Category: domain.CatGeneral,
		Description: "Reach level 5", Icon: "⭐", RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.Level >= 5 },
	},
	{
		ID: "levelUp10", Title: "Elite", Category: domain.CatGeneral,
		Description: "Reach level 10", Icon: "💎", RewardXP: 250,
		Predicate: func(s domain.Snapshot) bool { return s.Level >= 10 },
	},
}

// AchievementByID returns the catalog entry for an ID, or nil.
func AchievementByID(id string) *domain.AchievementDef {
	for i := range Achievements {
		if Achievements[i].ID == id {
			return &Achievements[i]
		}
	}
	return nil
}

// EvaluateAchievements checks every catalog entry against the snapshot
// and returns the newly satisfied definitions. Already-unlocked IDs are
// skipped before their predicate runs, so a second call with the same
// user is a no-op. A panicking predicate counts as false; one broken
// check never blocks the rest.
//
// The caller records the unlock (ID membership plus XP grant) as a
// single state transition.
func EvaluateAchievements(user *domain.User, snap domain.Snapshot) []domain.AchievementDef {
	var newly []domain.AchievementDef
	for _, def := range Achievements {
		if user.HasAchievement(def.ID) {
			continue
		}
		if satisfied(def.Predicate, snap) {
			newly = append(newly, def)
		}
	}
	return newly
}

func satisfied(pred func(domain.Snapshot) bool, snap domain.Snapshot) (ok bool) {
	if pred == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return pred(snap)
}
