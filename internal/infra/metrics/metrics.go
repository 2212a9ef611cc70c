// Package metrics provides Prometheus metrics for questforge —
// counters and gauges for XP flow, the coin economy, chests, streaks,
// and daily settlements.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Progression ────────────────────────────────────────────────────────────

// XPTotal tracks lifetime XP.
var XPTotal = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "questforge",
	Name:      "xp_total",
	Help:      "Lifetime experience points.",
})

// XPEarned tracks positive effective XP deltas.
var XPEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "xp_earned_total",
	Help:      "Total XP earned (post-buff, positive deltas only).",
})

// XPPenalties tracks XP removed by end-of-day settlement.
var XPPenalties = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "xp_penalties_total",
	Help:      "XP deducted at rollover, by penalty source.",
}, []string{"source"})

// StreakDays tracks the current consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "questforge",
	Name:      "streak_days",
	Help:      "Current consecutive-day streak.",
})

// ─── Economy ────────────────────────────────────────────────────────────────

// CoinsBalance tracks the spendable coin balance.
var CoinsBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "questforge",
	Name:      "coins_balance",
	Help:      "Current coin balance.",
})

// CoinsSpent tracks coins committed through the store ledger.
var CoinsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "coins_spent_total",
	Help:      "Total coins spent on purchases.",
})

// PurchasesTotal tracks committed purchases by category.
var PurchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "purchases_total",
	Help:      "Committed purchases.",
}, []string{"category"})

// ─── Chests ─────────────────────────────────────────────────────────────────

// ChestsAwarded tracks chests granted at daily rollover by rarity.
var ChestsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "chests_awarded_total",
	Help:      "Chests awarded at daily rollover.",
}, []string{"rarity"})

// ChestsClaimed tracks claimed chest rewards by rarity and kind.
var ChestsClaimed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "chests_claimed_total",
	Help:      "Claimed chest rewards.",
}, []string{"rarity", "reward"})

// ─── Engine ─────────────────────────────────────────────────────────────────

// DailyResets tracks completed end-of-day settlements.
var DailyResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "daily_resets_total",
	Help:      "Completed end-of-day settlements.",
})

// AchievementsUnlocked tracks newly unlocked achievements.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "questforge",
	Name:      "achievements_unlocked_total",
	Help:      "Newly unlocked achievements.",
})
