// Package domain holds the pure types of the progression engine.
// No infrastructure imports — services and storage depend on this
// package, never the other way around.
package domain

import "time"

// DayFormat is the wire format for logical and calendar dates.
const DayFormat = "2006-01-02"

// GoldenBuffDuration is how long one golden buff application lasts.
// Both the store purchase and the chest reward extend by this much.
const GoldenBuffDuration = 24 * time.Hour

// UserProfile is the single mutable progression record. It is owned by
// the profile store and mutated only through engine methods.
type UserProfile struct {
	XP                int64   `json:"xp"`
	Coins             int64   `json:"coins"`
	Streak            int     `json:"streak"`
	HasFreeze         bool    `json:"has_freeze"`
	GoldenBuffExpires int64   `json:"golden_buff_expires"` // unix seconds, 0 = never granted
	LastActiveDate    string  `json:"last_active_date"`    // calendar date
	LastSeenRankIndex int     `json:"last_seen_rank_index"`
	DailyXP           int64   `json:"daily_xp"`
	LastDailyReset    string  `json:"last_daily_reset"` // logical date
	Chests            []Chest `json:"chests"`
	WeightKg          float64 `json:"weight_kg"`
	BodyFatPct        float64 `json:"body_fat_pct"`
}

// GoldenBuffActive reports whether the XP-doubling buff is live at the
// given instant. An expiry in the past is equivalent to no buff; it is
// never actively cleared, only superseded.
func (p UserProfile) GoldenBuffActive(now time.Time) bool {
	return p.GoldenBuffExpires > 0 && now.Unix() < p.GoldenBuffExpires
}

// ExtendGoldenBuff adds one buff duration starting from whichever is
// later: now or the current expiry. An active buff stacks additively;
// an expired one restarts from now.
func (p *UserProfile) ExtendGoldenBuff(now time.Time) {
	base := now.Unix()
	if p.GoldenBuffExpires > base {
		base = p.GoldenBuffExpires
	}
	p.GoldenBuffExpires = base + int64(GoldenBuffDuration/time.Second)
}

// ChestByID returns the inventory position of the chest with the given
// identity, or -1 if it is not held.
func (p UserProfile) ChestByID(id string) int {
	for i, c := range p.Chests {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the profile. Snapshot accessors hand
// out clones so callers can never alias the owned record.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Chests = make([]Chest, len(p.Chests))
	copy(out.Chests, p.Chests)
	return out
}

// LogicalDate returns the accounting date for a timestamp. The day
// boundary is 04:00 local time: anything before 4 AM still belongs to
// the previous calendar date, so late-night activity is settled with
// the day it ends.
func LogicalDate(t time.Time) string {
	return t.Add(-4 * time.Hour).Format(DayFormat)
}

// CalendarDate returns the plain calendar date for a timestamp. Streak
// accounting deliberately uses this instead of LogicalDate.
func CalendarDate(t time.Time) string {
	return t.Format(DayFormat)
}

// PreviousDay returns the date string one day before d. Malformed
// input yields an empty string.
func PreviousDay(d string) string {
	t, err := time.Parse(DayFormat, d)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DayFormat)
}
