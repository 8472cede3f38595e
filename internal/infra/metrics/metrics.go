// Package metrics provides Prometheus metrics for the Credify engine:
// activity volume, XP flow, unlocks, challenge completions and
// persistence health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RecordsLogged counts activity records by type.
var RecordsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "credify",
	Name:      "records_logged_total",
	Help:      "Total activity records logged.",
}, []string{"type"})

// XPGranted counts experience points by source.
var XPGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "credify",
	Name:      "xp_granted_total",
	Help:      "Total experience points granted.",
}, []string{"source"})

// AchievementsUnlocked counts achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "credify",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// ChallengesCompleted counts daily challenge completions by category.
var ChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "credify",
	Name:      "challenges_completed_total",
	Help:      "Total daily challenges completed.",
}, []string{"category"})

// UserLevel tracks the current level.
var UserLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "credify",
	Name:      "user_level",
	Help:      "Current user level.",
})

// CurrentStreak tracks the overall current streak in days.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "credify",
	Name:      "current_streak_days",
	Help:      "Current overall streak in days.",
})

// StateFlushes counts coalesced state writes by outcome.
var StateFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "credify",
	Name:      "state_flushes_total",
	Help:      "Total coalesced state writes.",
}, []string{"outcome"})
