// Package streak maintains the consecutive-day activity streak.
//
// Streaks run on plain calendar dates, not the 4 AM logical boundary
// the daily reset uses. The asymmetry is deliberate: late-night work
// should not incur next-day penalties, but a streak day is a calendar
// day.
package streak

import (
	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// Tracker advances the streak on activity ticks.
type Tracker struct {
	profiles *profile.Store
	clock    domain.Clock
}

// New creates a streak tracker.
func New(profiles *profile.Store, clock domain.Clock) *Tracker {
	return &Tracker{profiles: profiles, clock: clock}
}

// Tick records activity for the current calendar day. Safe to call on
// every poll interval: repeat calls within a day are no-ops.
//
// A missed day is forgiven by consuming the single freeze charge; the
// freeze covers any gap, but only once. Without one the streak resets
// to 1.
func (t *Tracker) Tick() error {
	now := t.clock.Now()
	today := domain.CalendarDate(now)
	yesterday := domain.CalendarDate(now.AddDate(0, 0, -1))

	return t.profiles.Update(func(p *domain.UserProfile) {
		if p.LastActiveDate == today {
			return
		}
		// Stored date in the future means the wall clock jumped
		// backward. Never apply negative-day logic.
		if p.LastActiveDate > today {
			return
		}

		switch {
		case p.LastActiveDate == "":
			p.Streak = 1
		case p.LastActiveDate == yesterday:
			p.Streak++
		case p.HasFreeze:
			p.HasFreeze = false
			p.Streak++
		default:
			p.Streak = 1
		}
		p.LastActiveDate = today
		metrics.StreakDays.Set(float64(p.Streak))
	})
}
