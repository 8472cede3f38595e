package gamification

import (
	"fmt"
	"math/rand"

	"github.com/credify-app/credify/internal/domain"
)

// challengeCategories is the fixed generation order: exactly one
// challenge per category per day.
var challengeCategories = []domain.Category{
	domain.CatFinancial,
	domain.CatHealth,
	domain.CatMindfulness,
}

// ChallengePools maps each category to its fixed template pool.
// Keyed by category so generation and evaluation dispatch through the
// table instead of string switches.
var ChallengePools = map[domain.Category][]domain.ChallengeTemplate{
	domain.CatFinancial: {
		{
			ID: "noSpend", Title: "No Spend Day", RewardXP: 30, Category: domain.CatFinancial,
			Description: "Don't log any expenses today",
			// Time-window challenge: only decidable once the day is
			// effectively over, so it completes on the end-of-day pass.
			Predicate: func(c domain.ChallengeContext) bool {
				return c.EndOfDay && c.Summary.Expenses == 0
			},
		},
		{
			ID: "logAll", Title: "Track Everything", RewardXP: 20, Category: domain.CatFinancial,
			Description: "Log at least 3 expenses",
			Predicate: func(c domain.ChallengeContext) bool {
				return c.Summary.Expenses >= 3
			},
		},
		{
			ID: "underBudget", Title: "Budget Keeper", RewardXP: 25, Category: domain.CatFinancial,
			Description: "Stay 20% under daily budget",
			Predicate: func(c domain.ChallengeContext) bool {
				monthly := c.State.Financial.MonthlyBudget
				if monthly <= 0 {
					return false
				}
				limit := monthly / 30 * 0.8
				if c.SpentToday > limit {
					return false
				}
				// With nothing logged yet this is indistinguishable
				// from "hasn't started", so wait for an expense or
				// the end of the day.
				return c.Summary.Expenses >= 1 || c.EndOfDay
			},
		},
	},
	domain.CatHealth: {
		{
			ID: "workout", Title: "Get Moving", RewardXP: 20, Category: domain.CatHealth,
			Description: "Complete any workout",
			Predicate: func(c domain.ChallengeContext) bool {
				return c.Summary.Workouts >= 1
			},
		},
		{
			ID: "hydrate", Title: "Stay Hydrated", RewardXP: 15, Category: domain.CatHealth,
			Description: "Log 8 glasses of water",
			Predicate: func(c domain.ChallengeContext) bool {
				goal := c.State.Health.DailyWaterGoal
				if goal <= 0 {
					goal = 8
				}
				return c.Summary.WaterGlasses >= goal
			},
		},
		{
			ID: "steps", Title: "Step It Up", RewardXP: 25, Category: domain.CatHealth,
			Description: "Reach 10,000 steps",
			// No step source is wired up; missing data evaluates
			// false rather than erroring.
			Predicate: func(c domain.ChallengeContext) bool { return false },
		},
	},
	domain.CatMindfulness: {
		{
			ID: "meditate", Title: "Calm Mind", RewardXP: 20, Category: domain.CatMindfulness,
			Description: "Complete a 10-min meditation",
			Predicate: func(c domain.ChallengeContext) bool {
				goal := c.State.Mindfulness.MeditationGoal
				if goal <= 0 {
					goal = 10
				}
				return c.MinutesToday >= goal
			},
		},
		{
			ID: "journal", Title: "Reflect", RewardXP: 15, Category: domain.CatMindfulness,
			Description: "Write a journal entry",
			Predicate: func(c domain.ChallengeContext) bool {
				return c.Summary.Journals >= 1
			},
		},
		{
			ID: "gratitude", Title: "Grateful Heart", RewardXP: 15, Category: domain.CatMindfulness,
			Description: "Log 3 things you're grateful for",
			Predicate: func(c domain.ChallengeContext) bool {
				return c.Summary.GratitudeItems >= 3
			},
		},
	},
}

// ChallengeTemplateByID finds a template in any pool.
func ChallengeTemplateByID(id string) *domain.ChallengeTemplate {
	for _, pool := range ChallengePools {
		for i := range pool {
			if pool[i].ID == id {
				return &pool[i]
			}
		}
	}
	return nil
}

// GenerateChallenges instantiates the three challenges for a date, one
// per category, picked pseudo-randomly from each pool. Selection needs
// no determinism across runs; non-duplication per date is the caller's
// contract (persisted rows for the date win over regeneration).
func GenerateChallenges(date domain.Date, rnd *rand.Rand) []domain.DailyChallenge {
	challenges := make([]domain.DailyChallenge, 0, len(challengeCategories))
	for _, cat := range challengeCategories {
		pool := ChallengePools[cat]
		if len(pool) == 0 {
			continue
		}
		tmpl := pool[rnd.Intn(len(pool))]
		challenges = append(challenges, domain.DailyChallenge{
			ID:          fmt.Sprintf("%s-%s", date, tmpl.ID),
			TemplateID:  tmpl.ID,
			Title:       tmpl.Title,
			Description: tmpl.Description,
			RewardXP:    tmpl.RewardXP,
			Category:    tmpl.Category,
			Completed:   false,
			Date:        date,
		})
	}
	return challenges
}

// EvaluateChallenge runs a challenge's template predicate against the
// context. Unknown templates and panicking predicates evaluate false.
// Completion bookkeeping (the flag flip and the XP grant) belongs to the
// caller, guarded by the Completed flag for idempotence.
func EvaluateChallenge(c domain.DailyChallenge, ctx domain.ChallengeContext) bool {
	tmpl := ChallengeTemplateByID(c.TemplateID)
	if tmpl == nil {
		return false
	}
	return challengeSatisfied(tmpl.Predicate, ctx)
}

func challengeSatisfied(pred func(domain.ChallengeContext) bool, ctx domain.ChallengeContext) (ok bool) {
	if pred == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return pred(ctx)
}
