// Package progression implements XP accounting and the rank ladder.
package progression

import (
	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// Engine applies XP deltas and answers rank queries.
type Engine struct {
	profiles *profile.Store
	clock    domain.Clock
}

// New creates a progression engine.
func New(profiles *profile.Store, clock domain.Clock) *Engine {
	return &Engine{profiles: profiles, clock: clock}
}

// RankForXP returns the index of the highest rank whose threshold does
// not exceed xp. Thresholds are strictly increasing, so this is
// monotonic in xp.
func RankForXP(xp int64) int {
	idx := 0
	for i, r := range domain.Ranks {
		if xp >= r.Threshold {
			idx = i
		}
	}
	return idx
}

// ApplyXPDelta applies a signed XP delta to lifetime and daily XP and
// returns the effective amount. An active golden buff doubles the
// signed amount — penalties too, which is the historical behavior and
// kept deliberately. Both totals clamp to zero after the update,
// independently of each other.
func (e *Engine) ApplyXPDelta(amount int64) (int64, error) {
	now := e.clock.Now()

	var effective int64
	err := e.profiles.Update(func(p *domain.UserProfile) {
		effective = amount
		if p.GoldenBuffActive(now) {
			effective = amount * 2
		}
		p.XP += effective
		p.DailyXP += effective
		if p.XP < 0 {
			p.XP = 0
		}
		if p.DailyXP < 0 {
			p.DailyXP = 0
		}
		if p.Coins < 0 {
			p.Coins = 0
		}
		metrics.XPTotal.Set(float64(p.XP))
		if effective > 0 {
			metrics.XPEarned.Add(float64(effective))
		}
	})
	return effective, err
}

// CheckRankUp reports a pending rank-up: the current rank index when
// it exceeds the last acknowledged one. It keeps signaling until
// AcknowledgeRankUp is called — the display is idempotent, the
// suppression is not.
func (e *Engine) CheckRankUp() (int, bool) {
	p := e.profiles.Snapshot()
	rank := RankForXP(p.XP)
	if rank > p.LastSeenRankIndex {
		return rank, true
	}
	return 0, false
}

// AcknowledgeRankUp records that the user has seen the rank-up modal
// for the given rank index. Never lowers the watermark.
func (e *Engine) AcknowledgeRankUp(idx int) error {
	return e.profiles.Update(func(p *domain.UserProfile) {
		if idx > p.LastSeenRankIndex {
			p.LastSeenRankIndex = idx
		}
	})
}

// Rank returns the current rank index and its ladder entry.
func (e *Engine) Rank() (int, domain.Rank) {
	p := e.profiles.Snapshot()
	idx := RankForXP(p.XP)
	return idx, domain.Ranks[idx]
}
