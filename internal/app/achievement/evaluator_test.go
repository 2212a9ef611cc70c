package achievement

import (
	"testing"
	"time"

	"github.com/questforge/questforge/internal/domain"
)

type memUnlocks struct {
	unlocks map[string]string
}

func newMemUnlocks() *memUnlocks {
	return &memUnlocks{unlocks: make(map[string]string)}
}

func (m *memUnlocks) UnlockAchievement(code, date string) (bool, error) {
	if _, ok := m.unlocks[code]; ok {
		return false, nil
	}
	m.unlocks[code] = date
	return true, nil
}

func (m *memUnlocks) AchievementUnlocks() (map[string]string, error) {
	out := make(map[string]string, len(m.unlocks))
	for k, v := range m.unlocks {
		out[k] = v
	}
	return out, nil
}

func newEvaluator() (*Evaluator, *memUnlocks) {
	store := newMemUnlocks()
	clock := domain.NewFakeClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local))
	return New(store, clock), store
}

func TestUnlockIsIdempotent(t *testing.T) {
	e, store := newEvaluator()

	fresh, err := e.Unlock("monk_mode")
	if err != nil {
		t.Fatal(err)
	}
	if !fresh {
		t.Error("first unlock should be fresh")
	}
	if store.unlocks["monk_mode"] != "2026-03-10" {
		t.Errorf("unlock date = %q", store.unlocks["monk_mode"])
	}

	fresh, err = e.Unlock("monk_mode")
	if err != nil {
		t.Fatal(err)
	}
	if fresh {
		t.Error("repeat unlock must be a silent no-op")
	}
}

func TestCheckAndUnlock(t *testing.T) {
	e, _ := newEvaluator()

	stats := domain.UserStats{
		Streak:     30,
		DayWaterML: 4000,
	}
	fresh, err := e.CheckAndUnlock(stats)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"monk_mode": true, "hydro_homie": true}
	if len(fresh) != len(want) {
		t.Fatalf("fresh = %v, want codes %v", fresh, want)
	}
	for _, code := range fresh {
		if !want[code] {
			t.Errorf("unexpected unlock %q", code)
		}
	}

	// Re-evaluating the same stats unlocks nothing new.
	fresh, err = e.CheckAndUnlock(stats)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 0 {
		t.Errorf("second evaluation unlocked %v", fresh)
	}
}

func TestListPreservesCatalogOrder(t *testing.T) {
	e, _ := newEvaluator()
	if _, err := e.Unlock("giga_chad"); err != nil {
		t.Fatal(err)
	}

	list, err := e.List()
	if err != nil {
		t.Fatal(err)
	}
	defs := domain.Achievements()
	if len(list) != len(defs) {
		t.Fatalf("list has %d entries, want %d", len(list), len(defs))
	}
	for i, st := range list {
		if st.Code != defs[i].Code {
			t.Errorf("position %d: %q, want %q", i, st.Code, defs[i].Code)
		}
		unlocked := st.UnlockedOn != ""
		if unlocked != (st.Code == "giga_chad") {
			t.Errorf("%q unlocked = %v", st.Code, unlocked)
		}
	}
}
