// Package achievement evaluates unlock conditions over user stats.
package achievement

import (
	log "github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// UnlockStore persists which achievement codes have been earned.
// Unlock must be a no-op for codes already present and report whether
// the row is new.
type UnlockStore interface {
	UnlockAchievement(code, date string) (bool, error)
	AchievementUnlocks() (map[string]string, error)
}

// Evaluator runs the achievement catalog against stat snapshots.
type Evaluator struct {
	store UnlockStore
	clock domain.Clock
}

func New(store UnlockStore, clock domain.Clock) *Evaluator {
	return &Evaluator{store: store, clock: clock}
}

// Unlock marks the code earned as of the current logical day. Returns
// true only when this call created the unlock; repeat calls are silent
// no-ops.
func (e *Evaluator) Unlock(code string) (bool, error) {
	date := domain.LogicalDate(e.clock.Now())
	fresh, err := e.store.UnlockAchievement(code, date)
	if err != nil {
		return false, err
	}
	if fresh {
		metrics.AchievementsUnlocked.Inc()
		log.WithField("code", code).Info("achievement unlocked")
	}
	return fresh, nil
}

// CheckAndUnlock runs every catalog predicate against the snapshot and
// unlocks the ones that hold. Returns the codes newly unlocked by this
// evaluation.
func (e *Evaluator) CheckAndUnlock(stats domain.UserStats) ([]string, error) {
	var fresh []string
	for _, def := range domain.Achievements() {
		if !def.Predicate(stats) {
			continue
		}
		ok, err := e.Unlock(def.Code)
		if err != nil {
			return fresh, err
		}
		if ok {
			fresh = append(fresh, def.Code)
		}
	}
	return fresh, nil
}

// Status pairs each catalog entry with its unlock date, empty when
// still locked. Catalog order is preserved.
type Status struct {
	domain.AchievementDef
	UnlockedOn string `json:"unlocked_on,omitempty"`
}

// List returns the full catalog with unlock state.
func (e *Evaluator) List() ([]Status, error) {
	unlocks, err := e.store.AchievementUnlocks()
	if err != nil {
		return nil, err
	}
	defs := domain.Achievements()
	out := make([]Status, 0, len(defs))
	for _, def := range defs {
		out = append(out, Status{AchievementDef: def, UnlockedOn: unlocks[def.Code]})
	}
	return out, nil
}
